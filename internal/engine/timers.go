package engine

import (
	"context"
	"fmt"
)

const (
	timerBlockMinutes  = 5
	BerriesPerBlock    = 5
	ExperiencePerBlock = 2
)

// TimerPayout returns the berries and experience a completed session of the
// given length earns. Durations round up to the next 5-minute block.
func TimerPayout(minutes int) (berries, experience int) {
	if minutes <= 0 {
		return 0, 0
	}
	blocks := (minutes + timerBlockMinutes - 1) / timerBlockMinutes
	return blocks * BerriesPerBlock, blocks * ExperiencePerBlock
}

func (e *Engine) timerIndex(id string) int {
	for i := range e.timers {
		if e.timers[i].ID == id {
			return i
		}
	}
	return -1
}

// StartTimer opens a running focus session for taskID and returns its id. The
// task is not checked: a session may outlive its task.
func (e *Engine) StartTimer(ctx context.Context, taskID string, minutes int) (string, error) {
	if minutes <= 0 {
		return "", ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if minutes < e.rules.MinTimerMinutes || minutes > e.rules.MaxTimerMinutes {
		return "", ValidationError{
			Field:  "duration",
			Reason: fmt.Sprintf("must be between %d and %d minutes", e.rules.MinTimerMinutes, e.rules.MaxTimerMinutes),
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	s := TimerSession{
		ID:              e.newID(func(id string) bool { return e.timerIndex(id) >= 0 }),
		TaskID:          taskID,
		DurationMinutes: minutes,
		StartedAt:       e.stamp(),
	}
	e.timers = append(e.timers, s)
	e.markDirty(KeyTimers)

	if _, err := e.commit(ctx); err != nil {
		return "", err
	}
	return s.ID, nil
}

// CompleteTimer closes a running session and pays berries and experience.
// Unknown or already completed sessions return a nil reward.
func (e *Engine) CompleteTimer(ctx context.Context, id string) (*Reward, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.timerIndex(id)
	if i < 0 || !e.timers[i].IsRunning() {
		return nil, nil
	}

	e.begin()
	now := e.stamp()
	s := &e.timers[i]
	s.CompletedAt = &now
	e.markDirty(KeyTimers)

	berries, xp := TimerPayout(s.DurationMinutes)
	e.creditBerries(berries)
	e.gainExperience(xp)
	e.unlockAchievement(AchievementFirstTimer)

	e.log.Debugf("timer %s completed (%d min)", id, s.DurationMinutes)
	return e.commit(ctx)
}
