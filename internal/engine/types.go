package engine

import (
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ParseDifficulty accepts any casing and surrounding whitespace.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", ValidationError{Field: "difficulty", Reason: "must be easy, medium or hard"}
	}
	return d, nil
}

// Task is a unit of work. Completed and Deleted are terminal and mutually
// exclusive.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	CategoryID  string     `json:"flavorId"`
	Difficulty  Difficulty `json:"difficulty"`
	Completed   bool       `json:"completed"`
	Deleted     bool       `json:"deleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

func (t Task) IsActive() bool { return !t.Completed && !t.Deleted }

type TimerSession struct {
	ID              string     `json:"id"`
	TaskID          string     `json:"taskId"`
	DurationMinutes int        `json:"duration"`
	StartedAt       time.Time  `json:"startedAt"`
	CompletedAt     *time.Time `json:"completedAt"`
}

func (s TimerSession) IsRunning() bool { return s.CompletedAt == nil }

// Category is a cake flavor: a task tag that is bought with berries.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Price    int    `json:"price"`
	Owned    bool   `json:"owned"`
	IsCustom bool   `json:"isCustom"`
}

// ShopItem is a real-world reward bought with coins.
type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Image       string `json:"image"`
	IsCustom    bool   `json:"isCustom"`
}

// Achievement is binary when Goal is nil and cumulative otherwise.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsUnlocked  bool   `json:"isUnlocked"`
	Progress    *int   `json:"progress,omitempty"`
	Goal        *int   `json:"goal,omitempty"`
}

func (a Achievement) IsCumulative() bool { return a.Goal != nil }

type UserStats struct {
	Level                 int `json:"level"`
	Experience            int `json:"experience"`
	ExperienceToNextLevel int `json:"experienceToNextLevel"`
	Streak                int `json:"streak"`
	// LastActiveDate is a calendar date (2006-01-02) or empty.
	LastActiveDate string `json:"lastActiveDate,omitempty"`
}

type AnimationKind string

const (
	AnimationNone AnimationKind = ""
	AnimationEat  AnimationKind = "eat"
	AnimationRot  AnimationKind = "rot"
)

// AnimationSignal is the latest user-facing task event. It is never persisted.
type AnimationSignal struct {
	Kind   AnimationKind `json:"type"`
	TaskID string        `json:"taskId,omitempty"`
}

// State is a full copy of everything the engine owns.
type State struct {
	Tasks         []Task          `json:"tasks"`
	TimerSessions []TimerSession  `json:"timers"`
	Coins         int             `json:"coins"`
	Berries       int             `json:"berries"`
	Categories    []Category      `json:"flavors"`
	ShopItems     []ShopItem      `json:"rewards"`
	Achievements  []Achievement   `json:"achievements"`
	Stats         UserStats       `json:"stats"`
	Animation     AnimationSignal `json:"animation"`
}
