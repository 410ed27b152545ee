package engine

import "context"

func (e *Engine) achievementIndex(id string) int {
	for i := range e.achievements {
		if e.achievements[i].ID == id {
			return i
		}
	}
	return -1
}

// unlockAchievement flips IsUnlocked once, fills progress to the goal and pays
// the experience bonus. Unknown or already unlocked ids are ignored.
func (e *Engine) unlockAchievement(id string) bool {
	i := e.achievementIndex(id)
	if i < 0 || e.achievements[i].IsUnlocked {
		return false
	}

	a := &e.achievements[i]
	a.IsUnlocked = true
	if a.Goal != nil {
		a.Progress = intPtr(*a.Goal)
	}
	e.markDirty(KeyAchievements)
	e.fx.Unlocked = append(e.fx.Unlocked, id)
	e.log.Infof("achievement unlocked: %s", id)

	e.gainExperience(AchievementExperience)
	return true
}

// incrementAchievementProgress adds amount to a cumulative achievement and
// unlocks it in the same step once the goal is reached.
func (e *Engine) incrementAchievementProgress(id string, amount int) bool {
	i := e.achievementIndex(id)
	if i < 0 || amount <= 0 {
		return false
	}
	a := &e.achievements[i]
	if a.IsUnlocked || !a.IsCumulative() {
		return false
	}

	progress := amount
	if a.Progress != nil {
		progress += *a.Progress
	}
	if progress >= *a.Goal {
		return e.unlockAchievement(id)
	}
	a.Progress = intPtr(progress)
	e.markDirty(KeyAchievements)
	return true
}

// trackAchievementCount raises a cumulative achievement's progress to count.
// Progress never moves backwards.
func (e *Engine) trackAchievementCount(id string, count int) {
	i := e.achievementIndex(id)
	if i < 0 {
		return
	}
	current := 0
	if p := e.achievements[i].Progress; p != nil {
		current = *p
	}
	if count > current {
		e.incrementAchievementProgress(id, count-current)
	}
}

// UnlockAchievement reports whether the call unlocked the achievement.
func (e *Engine) UnlockAchievement(ctx context.Context, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	ok := e.unlockAchievement(id)
	_, err := e.commit(ctx)
	return ok, err
}

// IncrementAchievementProgress reports whether progress changed. Binary,
// unknown and already unlocked achievements are left alone.
func (e *Engine) IncrementAchievementProgress(ctx context.Context, id string, amount int) (bool, error) {
	if amount < 1 {
		return false, ValidationError{Field: "amount", Reason: "must be positive"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	ok := e.incrementAchievementProgress(id, amount)
	_, err := e.commit(ctx)
	return ok, err
}
