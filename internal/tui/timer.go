package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"cakecrumb/internal/engine"
	"cakecrumb/internal/ui"
)

// timerModel counts a focus session down and completes it in the engine when
// it reaches zero. Quitting early leaves the session running.
type timerModel struct {
	ctx context.Context
	eng *engine.Engine

	sessionID string
	title     string
	total     time.Duration

	timer timer.Model
	bar   progress.Model

	reward   *engine.Reward
	err      error
	finished bool
	lastLog  string
}

type completedMsg struct {
	reward *engine.Reward
	err    error
}

func newTimerModel(ctx context.Context, eng *engine.Engine, sessionID, title string, total, interval time.Duration) timerModel {
	return timerModel{
		ctx:       ctx,
		eng:       eng,
		sessionID: sessionID,
		title:     title,
		total:     total,
		timer:     timer.NewWithInterval(total, interval),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		lastLog:   "Baking…",
	}
}

func (m timerModel) Init() tea.Cmd {
	return m.timer.Init()
}

func (m timerModel) completeCmd() tea.Cmd {
	return func() tea.Msg {
		r, err := m.eng.CompleteTimer(m.ctx, m.sessionID)
		return completedMsg{reward: r, err: err}
	}
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		if w > 60 {
			w = 60
		}
		if w > 10 {
			m.bar.Width = w
		}
		return m, nil
	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd
	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		m.lastLog = "Ding! Taking it out of the oven…"
		return m, m.completeCmd()
	case completedMsg:
		m.finished = true
		m.reward = msg.reward
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.lastLog = "Left the oven on. Finish later with `cake timer done`."
			return m, tea.Quit
		case " ", "p":
			if m.timer.Running() {
				m.lastLog = "Paused."
			} else {
				m.lastLog = "Baking…"
			}
			return m, m.timer.Toggle()
		}
	}
	return m, nil
}

func (m timerModel) percent() float64 {
	if m.total <= 0 {
		return 1
	}
	elapsed := m.total - m.timer.Timeout
	p := float64(elapsed) / float64(m.total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

func (m timerModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconTimer, "Focus: "+m.title))
	b.WriteString("\n\n")
	if m.finished {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.ViewAs(m.percent()))
		b.WriteString("  ")
		b.WriteString(ui.Key.Render(m.timer.View()))
	}
	b.WriteString("\n\n")
	b.WriteString(ui.Muted.Render(m.lastLog))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("space: pause/resume  q: leave"))
	b.WriteString("\n")
	return b.String()
}

// TimerOutcome reports how a countdown ended. Finished is set when the
// countdown reached zero; Reward is nil if the session had already been
// completed elsewhere by then.
type TimerOutcome struct {
	Finished bool
	Reward   *engine.Reward
}

func (m timerModel) outcome() (TimerOutcome, error) {
	return TimerOutcome{Finished: m.finished, Reward: m.reward}, m.err
}

// RunTimer shows the countdown for a started session until it completes or
// the user leaves.
func RunTimer(ctx context.Context, eng *engine.Engine, sessionID, title string, minutes int, out io.Writer) (TimerOutcome, error) {
	if minutes <= 0 {
		return TimerOutcome{}, fmt.Errorf("invalid duration %d", minutes)
	}
	m := newTimerModel(ctx, eng, sessionID, title, time.Duration(minutes)*time.Minute, time.Second)
	p := tea.NewProgram(m, tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return TimerOutcome{}, err
	}
	fm, ok := final.(timerModel)
	if !ok {
		return TimerOutcome{}, nil
	}
	return fm.outcome()
}
