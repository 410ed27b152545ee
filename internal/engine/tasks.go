package engine

import (
	"context"
	"strings"
)

// TaskPayout is what completing a task of a given difficulty pays.
type TaskPayout struct {
	Coins      int
	Experience int
}

var taskPayouts = map[Difficulty]TaskPayout{
	DifficultyEasy:   {Coins: 20, Experience: 10},
	DifficultyMedium: {Coins: 50, Experience: 25},
	DifficultyHard:   {Coins: 100, Experience: 50},
}

// PayoutFor returns the completion payout for d; unknown difficulties pay
// nothing.
func PayoutFor(d Difficulty) TaskPayout {
	return taskPayouts[d]
}

// taskInput is what AddTask accepts once the title is trimmed.
type taskInput struct {
	Title      string     `validate:"required"`
	Difficulty Difficulty `validate:"oneof=easy medium hard"`
}

func (e *Engine) taskIndex(id string) int {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) completedTasks() int {
	n := 0
	for _, t := range e.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func (e *Engine) signal(kind AnimationKind, taskID string) {
	e.animation = AnimationSignal{Kind: kind, TaskID: taskID}
}

// AddTask logs a new active task and pays the creation experience. An empty
// categoryID files the task under the default flavor.
func (e *Engine) AddTask(ctx context.Context, title, categoryID string, d Difficulty) (*Task, *Reward, error) {
	title = strings.TrimSpace(title)
	if err := validateInput(taskInput{Title: title, Difficulty: d}); err != nil {
		return nil, nil, err
	}
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		categoryID = DefaultCategoryID
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	t := Task{
		ID:         e.newID(func(id string) bool { return e.taskIndex(id) >= 0 }),
		Title:      title,
		CategoryID: categoryID,
		Difficulty: d,
		CreatedAt:  e.stamp(),
	}
	e.tasks = append(e.tasks, t)
	e.markDirty(KeyTasks)
	e.gainExperience(TaskCreationExperience)

	reward, err := e.commit(ctx)
	if err != nil {
		return nil, nil, err
	}
	return &t, reward, nil
}

// CompleteTask marks an active task done and pays coins and experience by
// difficulty. Unknown, completed and deleted tasks return a nil reward.
func (e *Engine) CompleteTask(ctx context.Context, id string) (*Reward, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.taskIndex(id)
	if i < 0 || !e.tasks[i].IsActive() {
		return nil, nil
	}

	e.begin()
	now := e.stamp()
	t := &e.tasks[i]
	t.Completed = true
	t.CompletedAt = &now
	e.markDirty(KeyTasks)

	payout := PayoutFor(t.Difficulty)
	e.creditCoins(payout.Coins)
	e.gainExperience(payout.Experience)

	done := e.completedTasks()
	if done >= 1 {
		e.unlockAchievement(AchievementFirstTask)
	}
	e.trackAchievementCount(AchievementTasks5, done)
	e.trackAchievementCount(AchievementTasks10, done)

	e.signal(AnimationEat, id)
	e.log.Debugf("task %s completed (%s)", id, t.Difficulty)
	return e.commit(ctx)
}

// DeleteTask discards an active task. It reports whether anything changed.
func (e *Engine) DeleteTask(ctx context.Context, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.taskIndex(id)
	if i < 0 || !e.tasks[i].IsActive() {
		return false, nil
	}

	e.begin()
	now := e.stamp()
	e.tasks[i].Deleted = true
	e.tasks[i].DeletedAt = &now
	e.markDirty(KeyTasks)

	e.signal(AnimationRot, id)
	e.log.Debugf("task %s deleted", id)
	_, err := e.commit(ctx)
	return true, err
}
