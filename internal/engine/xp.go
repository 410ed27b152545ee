package engine

import (
	"math"
	"math/big"
)

const (
	// BaseExperienceThreshold is the experience needed to leave level 1.
	BaseExperienceThreshold = 100

	// TaskCreationExperience is granted for logging a task.
	TaskCreationExperience = 5

	// AchievementExperience is granted once per unlocked achievement.
	AchievementExperience = 50

	LevelUpCoinsPerLevel   = 50
	LevelUpBerriesPerLevel = 10

	// Past this level 100 * 1.2^level no longer fits an int64.
	maxThresholdLevel = 215
)

// ExperienceForLevel returns the experience needed to go from level to
// level+1: 100 at level 1, floor(100 * 1.2^level) afterwards.
// Computed as 100*6^n / 5^n in integers so the floor is exact.
func ExperienceForLevel(level int) int {
	if level <= 1 {
		return BaseExperienceThreshold
	}
	if level > maxThresholdLevel {
		return math.MaxInt
	}
	n := big.NewInt(int64(level))
	num := new(big.Int).Exp(big.NewInt(6), n, nil)
	num.Mul(num, big.NewInt(BaseExperienceThreshold))
	den := new(big.Int).Exp(big.NewInt(5), n, nil)
	q := new(big.Int).Quo(num, den)
	if !q.IsInt64() {
		return math.MaxInt
	}
	return int(q.Int64())
}

// gainExperience adds amount and applies a level-up when the threshold is met.
// The remainder carries over. Unless Rules.MultiLevelUp is set, at most one
// level is gained per call even if the remainder still exceeds the new
// threshold.
func (e *Engine) gainExperience(amount int) {
	if amount <= 0 {
		return
	}
	e.stats.Experience = addCapped(e.stats.Experience, amount)
	e.fx.Experience = addCapped(e.fx.Experience, amount)
	e.markDirty(KeyStats)

	for e.stats.Experience >= e.stats.ExperienceToNextLevel {
		e.stats.Experience -= e.stats.ExperienceToNextLevel
		e.stats.Level++
		e.stats.ExperienceToNextLevel = ExperienceForLevel(e.stats.Level)

		e.creditCoins(LevelUpCoinsPerLevel * e.stats.Level)
		e.creditBerries(LevelUpBerriesPerLevel * e.stats.Level)
		e.log.Infof("level up: now level %d (%d/%d xp)", e.stats.Level, e.stats.Experience, e.stats.ExperienceToNextLevel)

		if !e.rules.MultiLevelUp {
			break
		}
	}
}
