package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bakery theme (CLI + TUI).

const (
	IconCake    = "🍰"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconEat     = "😋"
	IconRot     = "🤢"
	IconTrophy  = "🏆"
	IconCoin    = "🪙"
	IconBerry   = "🫐"
	IconTimer   = "⏰"
	IconFire    = "🔥"
	IconLock    = "🔒"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // pink frosting
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cBerry   = lipgloss.Color("99")  // purple
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Berry = lipgloss.NewStyle().Bold(true).Foreground(cBerry)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func Coins(n int) string {
	return Gold.Render(fmt.Sprintf("%d %s", n, IconCoin))
}

func Berries(n int) string {
	return Berry.Render(fmt.Sprintf("%d %s", n, IconBerry))
}

// DifficultyText colors a task difficulty.
func DifficultyText(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return Good.Render("easy")
	case "medium":
		return Warn.Render("medium")
	case "hard":
		return Bad.Render("hard")
	default:
		return Muted.Render(d)
	}
}

// ProgressBar renders a fixed-width text bar for value out of max.
func ProgressBar(value, max, width int) string {
	if width <= 0 {
		return ""
	}
	if max <= 0 {
		max = 1
	}
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	filled := value * width / max
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// ShortID trims long ids for display; commands accept any unique prefix.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
