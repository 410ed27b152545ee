package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cakecrumb/internal/storage"
)

func TestExperienceForLevel(t *testing.T) {
	cases := map[int]int{
		0:  100,
		1:  100,
		2:  144,
		3:  172,
		4:  207,
		5:  248,
		10: 619,
	}
	for level, want := range cases {
		assert.Equal(t, want, ExperienceForLevel(level), "level %d", level)
	}
}

func TestLevelUpCarriesRemainder(t *testing.T) {
	ctx := context.Background()
	eng := newTestEnv(t).eng

	_, err := eng.GainExperience(ctx, 90)
	require.NoError(t, err)

	reward, err := eng.GainExperience(ctx, 20)
	require.NoError(t, err)
	assert.True(t, reward.LevelUp())
	assert.Equal(t, 1, reward.LevelBefore)
	assert.Equal(t, 2, reward.LevelAfter)
	assert.Equal(t, 100, reward.Coins)
	assert.Equal(t, 20, reward.Berries)

	stats := eng.Stats()
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 144, stats.ExperienceToNextLevel)
	assert.Equal(t, 10, stats.Experience)
	assert.Equal(t, 200, eng.Coins())
	assert.Equal(t, 70, eng.Berries())
}

func TestLevelUpIsCappedPerGrant(t *testing.T) {
	eng := newTestEnv(t).eng

	_, err := eng.GainExperience(context.Background(), 500)
	require.NoError(t, err)

	stats := eng.Stats()
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 400, stats.Experience)
	assert.Equal(t, 144, stats.ExperienceToNextLevel)
}

func TestMultiLevelUpRule(t *testing.T) {
	rules := DefaultRules()
	rules.MultiLevelUp = true
	eng := newTestEnv(t, WithRules(rules)).eng

	reward, err := eng.GainExperience(context.Background(), 500)
	require.NoError(t, err)

	stats := eng.Stats()
	assert.Equal(t, 4, stats.Level)
	assert.Equal(t, 84, stats.Experience)
	assert.Equal(t, 207, stats.ExperienceToNextLevel)
	assert.Equal(t, 100+150+200, reward.Coins)
	assert.Equal(t, 20+30+40, reward.Berries)
	assert.Equal(t, 550, eng.Coins())
}

func TestGainExperienceRejectsNegative(t *testing.T) {
	_, err := newTestEnv(t).eng.GainExperience(context.Background(), -1)
	requireValidation(t, err, "amount")
}

func streakStore(t *testing.T, streak int, last string) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	seedKey(t, store, KeyStats, UserStats{
		Level:                 1,
		ExperienceToNextLevel: 100,
		Streak:                streak,
		LastActiveDate:        last,
	})
	return store
}

func TestStreakConsecutiveDayUnlocksStreak3(t *testing.T) {
	eng := newTestEnvWithStore(t, streakStore(t, 2, "2026-03-09")).eng

	stats := eng.Stats()
	assert.Equal(t, 3, stats.Streak)
	assert.Equal(t, "2026-03-10", stats.LastActiveDate)
	assert.Equal(t, AchievementExperience, stats.Experience)
	assert.Equal(t, 100+3*StreakBonusPerDay, eng.Coins())

	a := achievement(t, eng, AchievementStreak3)
	assert.True(t, a.IsUnlocked)
	assert.Equal(t, 3, progress(a))
	assert.False(t, achievement(t, eng, AchievementStreak7).IsUnlocked)
}

func TestStreakSevenUnlocksStreak7(t *testing.T) {
	eng := newTestEnvWithStore(t, streakStore(t, 6, "2026-03-09")).eng

	assert.Equal(t, 7, eng.Stats().Streak)
	assert.True(t, achievement(t, eng, AchievementStreak7).IsUnlocked)
	assert.Equal(t, 100+7*StreakBonusPerDay, eng.Coins())
}

func TestStreakBrokenResets(t *testing.T) {
	eng := newTestEnvWithStore(t, streakStore(t, 4, "2026-03-05")).eng

	stats := eng.Stats()
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, "2026-03-10", stats.LastActiveDate)
	assert.Equal(t, 100, eng.Coins())
}

func TestStreakSameDayIsNoOp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnvWithStore(t, streakStore(t, 4, "2026-03-10"))

	require.NoError(t, env.eng.CheckAndUpdateStreak(ctx))
	require.NoError(t, env.eng.CheckAndUpdateStreak(ctx))

	assert.Equal(t, 4, env.eng.Stats().Streak)
	assert.Equal(t, 100, env.eng.Coins())
}

func TestStreakFutureDateIsNoOp(t *testing.T) {
	eng := newTestEnvWithStore(t, streakStore(t, 4, "2026-03-12")).eng

	stats := eng.Stats()
	assert.Equal(t, 4, stats.Streak)
	assert.Equal(t, "2026-03-12", stats.LastActiveDate)
}

func TestStreakAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	assert.Equal(t, 1, env.eng.Stats().Streak)

	env.clock.Advance(24 * time.Hour)
	require.NoError(t, env.eng.CheckAndUpdateStreak(ctx))
	assert.Equal(t, 2, env.eng.Stats().Streak)
	assert.Equal(t, "2026-03-11", env.eng.Stats().LastActiveDate)
	assert.Equal(t, 100+2*StreakBonusPerDay, env.eng.Coins())

	// A later run the same day does not count twice.
	env.clock.Advance(3 * time.Hour)
	require.NoError(t, env.eng.CheckAndUpdateStreak(ctx))
	assert.Equal(t, 2, env.eng.Stats().Streak)
}

func TestStreakAcceptsTimestampDates(t *testing.T) {
	eng := newTestEnvWithStore(t, streakStore(t, 1, "2026-03-09T22:15:00.000Z")).eng
	assert.Equal(t, 2, eng.Stats().Streak)
}

func TestDaysBetween(t *testing.T) {
	d, err := daysBetween("2026-02-27", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 3, d)

	_, err = daysBetween("yesterday", "2026-03-02")
	assert.Error(t, err)
}
