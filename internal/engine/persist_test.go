package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cakecrumb/internal/storage"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	eng := env.eng

	task, _, err := eng.AddTask(ctx, "write report", "default", DifficultyMedium)
	require.NoError(t, err)
	other, _, err := eng.AddTask(ctx, "clean desk", "default", DifficultyEasy)
	require.NoError(t, err)
	timer, err := eng.StartTimer(ctx, task.ID, 25)
	require.NoError(t, err)
	env.clock.Advance(25 * time.Minute)
	_, err = eng.CompleteTimer(ctx, timer)
	require.NoError(t, err)
	_, err = eng.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	_, err = eng.DeleteTask(ctx, other.ID)
	require.NoError(t, err)
	_, err = eng.StartTimer(ctx, other.ID, 5)
	require.NoError(t, err)
	_, err = eng.PurchaseCategory(ctx, "mint")
	require.NoError(t, err)
	_, err = eng.AddCustomShopItem(ctx, CustomShopItemInput{Name: "Walk", Price: 30})
	require.NoError(t, err)

	before := eng.Snapshot()
	before.Animation = AnimationSignal{}

	reloaded, err := New(ctx, env.store, WithClock(env.clock.Now))
	require.NoError(t, err)
	after := reloaded.Snapshot()

	assert.Equal(t, before, after)
	assert.Equal(t, AnimationSignal{}, reloaded.Animation())
}

func TestReloadDoesNotReuseIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, _, err := env.eng.AddTask(ctx, "one", "", DifficultyEasy)
	require.NoError(t, err)

	// A fresh sequence starts over at id-1; the engine must skip it.
	reloaded, err := New(ctx, env.store, WithClock(env.clock.Now), WithIDGenerator(NewSequenceGenerator("id")))
	require.NoError(t, err)
	second, _, err := reloaded.AddTask(ctx, "two", "", DifficultyEasy)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, reloaded.Tasks(), 2)
}

func TestCorruptKeysFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(ctx, KeyTasks, []byte("{not json")))
	require.NoError(t, store.Save(ctx, KeyCoins, []byte(`"lots"`)))
	require.NoError(t, store.Save(ctx, KeyAchievements, []byte(`{"foreign":true}`)))
	require.NoError(t, store.Save(ctx, KeyCategories, []byte(`null`)))
	require.NoError(t, store.Save(ctx, KeyShopItems, []byte(`null`)))
	seedKey(t, store, KeyBerries, 12)

	eng := newTestEnvWithStore(t, store).eng

	assert.Empty(t, eng.Tasks())
	assert.Equal(t, 100, eng.Coins())
	assert.Equal(t, 12, eng.Berries())
	assert.Len(t, eng.Achievements(), 7)
	assert.Len(t, eng.Categories(), 6)
	assert.True(t, category(t, eng, DefaultCategoryID).Owned)
	assert.Len(t, eng.ShopItems(), 5)

	data, ok, err := store.Load(ctx, KeyCategories)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, "null", string(data))

	data, ok, err = store.Load(ctx, KeyTasks)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(data))

	data, _, err = store.Load(ctx, KeyCoins)
	require.NoError(t, err)
	assert.Equal(t, "100", string(data))
}

func TestLoadsBrowserExport(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(ctx, KeyTasks, []byte(`[
		{"id":"1714557600000","title":"Old task","flavorId":"vanilla","difficulty":"hard",
		 "completed":false,"deleted":false,"createdAt":"2024-05-01T10:00:00.000Z",
		 "completedAt":null,"deletedAt":null}
	]`)))
	require.NoError(t, store.Save(ctx, KeyTimers, []byte(`[
		{"id":"1714557700000","taskId":"1714557600000","duration":25,
		 "startedAt":"2024-05-01T10:01:40.000Z","completedAt":null}
	]`)))
	require.NoError(t, store.Save(ctx, KeyCoins, []byte(`340`)))

	eng := newTestEnvWithStore(t, store).eng

	tasks := eng.ActiveTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "vanilla", tasks[0].CategoryID)
	assert.Equal(t, time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC), tasks[0].CreatedAt.UTC())
	assert.Nil(t, tasks[0].CompletedAt)
	assert.Equal(t, 340, eng.Coins())

	reward, err := eng.CompleteTimer(ctx, "1714557700000")
	require.NoError(t, err)
	require.NotNil(t, reward)
	assert.Equal(t, 25, reward.Berries)
}

func TestNormalizeRepairsStats(t *testing.T) {
	store := storage.NewMemoryStore()
	seedKey(t, store, KeyStats, UserStats{Level: 0, Experience: -4, ExperienceToNextLevel: 3, LastActiveDate: "2026-03-10"})
	seedKey(t, store, KeyBerries, -20)

	eng := newTestEnvWithStore(t, store).eng

	stats := eng.Stats()
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 0, stats.Experience)
	assert.Equal(t, 100, stats.ExperienceToNextLevel)
	assert.Equal(t, 0, eng.Berries())
}

func TestNullAchievementsAreReseeded(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(ctx, KeyAchievements, []byte(`null`)))

	eng := newTestEnvWithStore(t, store).eng
	require.Len(t, eng.Achievements(), 7)

	task, _, err := eng.AddTask(ctx, "bake", "", DifficultyEasy)
	require.NoError(t, err)
	reward, err := eng.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Contains(t, reward.Unlocked, AchievementFirstTask)
}

func TestNormalizeRestoresSeedEntries(t *testing.T) {
	store := storage.NewMemoryStore()
	seedKey(t, store, KeyCategories, []Category{
		{ID: "lemon", Name: "Lemon", Price: 10, Owned: true, IsCustom: true},
	})
	seedKey(t, store, KeyAchievements, []Achievement{
		{ID: AchievementFirstTask, Title: "First Bite", IsUnlocked: true},
	})

	eng := newTestEnvWithStore(t, store).eng

	cats := eng.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, DefaultCategoryID, cats[0].ID)
	assert.True(t, cats[0].Owned)
	assert.True(t, category(t, eng, "lemon").Owned)

	assert.Len(t, eng.Achievements(), 7)
	assert.True(t, achievement(t, eng, AchievementFirstTask).IsUnlocked)
	tasks5 := achievement(t, eng, AchievementTasks5)
	assert.False(t, tasks5.IsUnlocked)
	assert.Equal(t, 0, progress(tasks5))
}

func TestNormalizeOwnsDefaultFlavor(t *testing.T) {
	store := storage.NewMemoryStore()
	cats := defaultCategories()
	cats[0].Owned = false
	seedKey(t, store, KeyCategories, cats)

	eng := newTestEnvWithStore(t, store).eng

	assert.True(t, category(t, eng, DefaultCategoryID).Owned)
	assert.Len(t, eng.Categories(), 6)
}

func TestNormalizeSettlesStoredExperience(t *testing.T) {
	store := storage.NewMemoryStore()
	seedKey(t, store, KeyStats, UserStats{Level: 1, Experience: 900, ExperienceToNextLevel: 100, LastActiveDate: "2026-03-10"})

	eng := newTestEnvWithStore(t, store).eng

	stats := eng.Stats()
	assert.Equal(t, 6, stats.Level)
	assert.Equal(t, 29, stats.Experience)
	assert.Equal(t, 298, stats.ExperienceToNextLevel)
	assert.Less(t, stats.Experience, stats.ExperienceToNextLevel)
	assert.Equal(t, 100, eng.Coins())
}

func TestSaveFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: storage.NewMemoryStore()}
	eng, err := New(ctx, store, WithIDGenerator(NewSequenceGenerator("id")))
	require.NoError(t, err)

	store.fail = true
	require.Error(t, eng.AddCoins(ctx, 10))
	assert.Equal(t, 110, eng.Coins())

	// The key stays pending and is written by the next successful save.
	store.fail = false
	require.NoError(t, eng.AddBerries(ctx, 1))
	data, _, err := store.Load(ctx, KeyCoins)
	require.NoError(t, err)
	assert.Equal(t, "110", string(data))
}

func TestNewRejectsNilStore(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)
}

func TestDefaultCatalogGolden(t *testing.T) {
	catalog := struct {
		Flavors      []Category    `json:"flavors"`
		Rewards      []ShopItem    `json:"rewards"`
		Achievements []Achievement `json:"achievements"`
	}{
		Flavors:      defaultCategories(),
		Rewards:      defaultShopItems(),
		Achievements: defaultAchievements(),
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "default_catalog", data)
}
