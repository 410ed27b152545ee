package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"cakecrumb/internal/logging"
	"cakecrumb/internal/storage"
)

// Rules are the tunable numbers of the economy and progression.
type Rules struct {
	StartingCoins   int
	StartingBerries int
	MinTimerMinutes int
	MaxTimerMinutes int
	// MultiLevelUp keeps leveling while experience covers the next
	// threshold. Off by default: one level per experience grant.
	MultiLevelUp bool
}

func DefaultRules() Rules {
	return Rules{
		StartingCoins:   100,
		StartingBerries: 50,
		MinTimerMinutes: 1,
		MaxTimerMinutes: 180,
	}
}

// Reward summarizes everything an operation paid out, bonuses included.
type Reward struct {
	Coins       int
	Berries     int
	Experience  int
	LevelBefore int
	LevelAfter  int
	Unlocked    []string
}

func (r *Reward) LevelUp() bool { return r != nil && r.LevelAfter > r.LevelBefore }

// Engine owns all persisted state and every rule that changes it. Each
// exported operation validates, mutates and writes through to the store
// before returning.
type Engine struct {
	mu    sync.Mutex
	store storage.Store
	log   logging.Logger
	now   func() time.Time
	ids   IDGenerator
	rules Rules

	tasks        []Task
	timers       []TimerSession
	coins        int
	berries      int
	categories   []Category
	shopItems    []ShopItem
	achievements []Achievement
	stats        UserStats
	animation    AnimationSignal

	dirty map[string]bool
	fx    *Reward
}

type Option func(*Engine)

func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock sets the time source. Calendar dates for streaks use the
// location of the returned times.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) { e.ids = g }
}

func WithRules(r Rules) Option {
	return func(e *Engine) { e.rules = r }
}

// New loads every key from store, seeding defaults for anything missing or
// corrupt, then evaluates the daily streak.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("engine: nil store")
	}
	e := &Engine{
		store: store,
		log:   logging.Nop(),
		now:   time.Now,
		ids:   UUIDGenerator{},
		rules: DefaultRules(),
		dirty: map[string]bool{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.load(ctx)

	e.begin()
	e.checkAndUpdateStreak()
	if _, err := e.commit(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) begin() {
	e.fx = &Reward{LevelBefore: e.stats.Level}
}

func (e *Engine) commit(ctx context.Context) (*Reward, error) {
	fx := e.fx
	fx.LevelAfter = e.stats.Level
	e.fx = &Reward{LevelBefore: e.stats.Level}
	if err := e.persist(ctx); err != nil {
		return fx, err
	}
	return fx, nil
}

// stamp is the current instant at millisecond precision, in UTC.
func (e *Engine) stamp() time.Time {
	return e.now().UTC().Truncate(time.Millisecond)
}

// GainExperience grants experience directly.
func (e *Engine) GainExperience(ctx context.Context, amount int) (*Reward, error) {
	if amount < 0 {
		return nil, ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	e.gainExperience(amount)
	return e.commit(ctx)
}

// Animation returns the live task event, if any.
func (e *Engine) Animation() AnimationSignal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.animation
}

// ClearAnimation drops the live task event once it has been shown.
func (e *Engine) ClearAnimation() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.animation = AnimationSignal{}
}

func (e *Engine) Coins() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.coins
}

func (e *Engine) Berries() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.berries
}

func (e *Engine) Stats() UserStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) Tasks() []Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneTasks(e.tasks, nil)
}

// ActiveTasks returns tasks that are neither completed nor deleted.
func (e *Engine) ActiveTasks() []Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneTasks(e.tasks, Task.IsActive)
}

func (e *Engine) TimerSessions() []TimerSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneTimers(e.timers)
}

func (e *Engine) Categories() []Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Category(nil), e.categories...)
}

func (e *Engine) ShopItems() []ShopItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ShopItem(nil), e.shopItems...)
}

func (e *Engine) Achievements() []Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneAchievements(e.achievements)
}

// Snapshot returns a deep copy of the whole state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Tasks:         cloneTasks(e.tasks, nil),
		TimerSessions: cloneTimers(e.timers),
		Coins:         e.coins,
		Berries:       e.berries,
		Categories:    append([]Category{}, e.categories...),
		ShopItems:     append([]ShopItem{}, e.shopItems...),
		Achievements:  cloneAchievements(e.achievements),
		Stats:         e.stats,
		Animation:     e.animation,
	}
}

// FindTask resolves a full id or a fragment that is a unique prefix or
// suffix of one.
func (e *Engine) FindTask(frag string) (Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, err := findByFragment(len(e.tasks), func(i int) string { return e.tasks[i].ID }, frag)
	if err != nil {
		return Task{}, err
	}
	return cloneTasks(e.tasks[i:i+1], nil)[0], nil
}

// FindTimer resolves a session id the same way as FindTask.
func (e *Engine) FindTimer(frag string) (TimerSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, err := findByFragment(len(e.timers), func(i int) string { return e.timers[i].ID }, frag)
	if err != nil {
		return TimerSession{}, err
	}
	return cloneTimers(e.timers[i : i+1])[0], nil
}

func findByFragment(n int, idAt func(int) string, frag string) (int, error) {
	frag = strings.TrimSpace(frag)
	if frag == "" {
		return -1, ErrNotFound
	}
	found := -1
	for i := 0; i < n; i++ {
		id := idAt(i)
		if id == frag {
			return i, nil
		}
		if strings.HasPrefix(id, frag) || strings.HasSuffix(id, frag) {
			if found >= 0 {
				return -1, ErrAmbiguous
			}
			found = i
		}
	}
	if found < 0 {
		return -1, ErrNotFound
	}
	return found, nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneTasks(in []Task, keep func(Task) bool) []Task {
	out := make([]Task, 0, len(in))
	for _, t := range in {
		if keep != nil && !keep(t) {
			continue
		}
		t.CompletedAt = cloneTime(t.CompletedAt)
		t.DeletedAt = cloneTime(t.DeletedAt)
		out = append(out, t)
	}
	return out
}

func cloneTimers(in []TimerSession) []TimerSession {
	out := make([]TimerSession, 0, len(in))
	for _, s := range in {
		s.CompletedAt = cloneTime(s.CompletedAt)
		out = append(out, s)
	}
	return out
}

func cloneAchievements(in []Achievement) []Achievement {
	out := make([]Achievement, 0, len(in))
	for _, a := range in {
		if a.Progress != nil {
			a.Progress = intPtr(*a.Progress)
		}
		if a.Goal != nil {
			a.Goal = intPtr(*a.Goal)
		}
		out = append(out, a)
	}
	return out
}
