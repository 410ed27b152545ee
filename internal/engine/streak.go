package engine

import (
	"context"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// StreakBonusPerDay is multiplied by the new streak length on each
// consecutive active day.
const StreakBonusPerDay = 5

func parseDate(s string) (time.Time, error) {
	if len(s) > len(dateLayout) {
		// Full timestamps from older data: keep the calendar part.
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// daysBetween returns to - from in whole calendar days.
func daysBetween(from, to string) (int, error) {
	f, err := parseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := parseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

func (e *Engine) today() string {
	return e.now().Format(dateLayout)
}

func (e *Engine) checkAndUpdateStreak() {
	today := e.today()
	last := e.stats.LastActiveDate

	if last == "" {
		e.stats.Streak = 1
		e.stats.LastActiveDate = today
		e.markDirty(KeyStats)
		return
	}
	if last == today {
		return
	}

	diff, err := daysBetween(last, today)
	if err != nil {
		e.log.Warnf("streak: %v; restarting streak", err)
		diff = 2
	}

	switch {
	case diff == 1:
		e.stats.Streak++
		e.stats.LastActiveDate = today
		e.markDirty(KeyStats)
		switch e.stats.Streak {
		case 3:
			e.unlockAchievement(AchievementStreak3)
		case 7:
			e.unlockAchievement(AchievementStreak7)
		}
		e.creditCoins(e.stats.Streak * StreakBonusPerDay)
	case diff > 1:
		e.stats.Streak = 1
		e.stats.LastActiveDate = today
		e.markDirty(KeyStats)
	default:
		// Clock went backwards.
		e.log.Warnf("streak: last active %s is after today %s", last, today)
	}
}

// CheckAndUpdateStreak evaluates the daily streak against today's date. New
// calls it once; calling it again on the same day changes nothing.
func (e *Engine) CheckAndUpdateStreak(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	e.checkAndUpdateStreak()
	_, err := e.commit(ctx)
	return err
}
