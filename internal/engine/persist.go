package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Persisted keys, one per entity kind.
const (
	KeyTasks        = "cakecrumb-tasks"
	KeyTimers       = "cakecrumb-timers"
	KeyCoins        = "cakecrumb-coins"
	KeyBerries      = "cakecrumb-berries"
	KeyCategories   = "cakecrumb-flavors"
	KeyShopItems    = "cakecrumb-rewards"
	KeyAchievements = "cakecrumb-achievements"
	KeyStats        = "cakecrumb-stats"
)

// Keys lists every persisted key in write order.
var Keys = []string{
	KeyTasks, KeyTimers, KeyCoins, KeyBerries,
	KeyCategories, KeyShopItems, KeyAchievements, KeyStats,
}

// loadOrSeed decodes key into a value. An absent key yields seed() and is
// marked for writing; a corrupt key is logged and replaced by seed(). A store
// read error is logged and yields seed() without overwriting the stored value.
func loadOrSeed[T any](ctx context.Context, e *Engine, key string, seed func() T) T {
	data, ok, err := e.store.Load(ctx, key)
	if err != nil {
		e.log.Warnf("load %s: %v; using defaults", key, err)
		return seed()
	}
	if !ok {
		e.markDirty(key)
		return seed()
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		e.log.Warnf("load %s: corrupt data (%v); using defaults", key, err)
		e.markDirty(key)
		return seed()
	}
	return v
}

func (e *Engine) load(ctx context.Context) {
	e.tasks = loadOrSeed(ctx, e, KeyTasks, func() []Task { return []Task{} })
	e.timers = loadOrSeed(ctx, e, KeyTimers, func() []TimerSession { return []TimerSession{} })
	e.coins = loadOrSeed(ctx, e, KeyCoins, func() int { return e.rules.StartingCoins })
	e.berries = loadOrSeed(ctx, e, KeyBerries, func() int { return e.rules.StartingBerries })
	e.categories = loadOrSeed(ctx, e, KeyCategories, defaultCategories)
	e.shopItems = loadOrSeed(ctx, e, KeyShopItems, defaultShopItems)
	e.achievements = loadOrSeed(ctx, e, KeyAchievements, defaultAchievements)
	e.stats = loadOrSeed(ctx, e, KeyStats, defaultStats)

	e.normalize()
}

func defaultStats() UserStats {
	return UserStats{Level: 1, ExperienceToNextLevel: ExperienceForLevel(1)}
}

// normalize repairs values a hand-edited or foreign store may carry.
func (e *Engine) normalize() {
	if e.tasks == nil {
		e.tasks = []Task{}
	}
	if e.timers == nil {
		e.timers = []TimerSession{}
	}
	if e.coins < 0 {
		e.log.Warnf("negative coin balance %d reset to 0", e.coins)
		e.coins = 0
		e.markDirty(KeyCoins)
	}
	if e.berries < 0 {
		e.log.Warnf("negative berry balance %d reset to 0", e.berries)
		e.berries = 0
		e.markDirty(KeyBerries)
	}
	if e.stats.Level < 1 {
		e.stats.Level = 1
		e.markDirty(KeyStats)
	}
	if want := ExperienceForLevel(e.stats.Level); e.stats.ExperienceToNextLevel != want {
		e.stats.ExperienceToNextLevel = want
		e.markDirty(KeyStats)
	}
	if e.stats.Experience < 0 {
		e.stats.Experience = 0
		e.markDirty(KeyStats)
	}
	if e.stats.Streak < 0 {
		e.stats.Streak = 0
		e.markDirty(KeyStats)
	}
	e.settleExperience()
	e.normalizeCatalogs()
}

// settleExperience converts stored experience at or above the threshold into
// levels. No level-up bonus is paid for it.
func (e *Engine) settleExperience() {
	from := e.stats.Level
	for e.stats.Experience >= e.stats.ExperienceToNextLevel {
		e.stats.Experience -= e.stats.ExperienceToNextLevel
		e.stats.Level++
		e.stats.ExperienceToNextLevel = ExperienceForLevel(e.stats.Level)
	}
	if e.stats.Level != from {
		e.log.Warnf("stored experience exceeded its threshold; level %d settled to %d", from, e.stats.Level)
		e.markDirty(KeyStats)
	}
}

// normalizeCatalogs reseeds catalogs stored as null, keeps the default flavor
// owned and restores seed achievements missing by id.
func (e *Engine) normalizeCatalogs() {
	if e.categories == nil {
		e.log.Warnf("load %s: empty value; using defaults", KeyCategories)
		e.categories = defaultCategories()
		e.markDirty(KeyCategories)
	}
	if i := e.categoryIndex(DefaultCategoryID); i < 0 {
		e.categories = append(defaultCategories()[:1], e.categories...)
		e.markDirty(KeyCategories)
	} else if !e.categories[i].Owned {
		e.categories[i].Owned = true
		e.markDirty(KeyCategories)
	}

	if e.shopItems == nil {
		e.log.Warnf("load %s: empty value; using defaults", KeyShopItems)
		e.shopItems = defaultShopItems()
		e.markDirty(KeyShopItems)
	}

	if e.achievements == nil {
		e.achievements = []Achievement{}
	}
	for _, seed := range defaultAchievements() {
		if e.achievementIndex(seed.ID) < 0 {
			e.achievements = append(e.achievements, seed)
			e.markDirty(KeyAchievements)
		}
	}
}

func (e *Engine) value(key string) any {
	switch key {
	case KeyTasks:
		return e.tasks
	case KeyTimers:
		return e.timers
	case KeyCoins:
		return e.coins
	case KeyBerries:
		return e.berries
	case KeyCategories:
		return e.categories
	case KeyShopItems:
		return e.shopItems
	case KeyAchievements:
		return e.achievements
	case KeyStats:
		return e.stats
	default:
		return nil
	}
}

func (e *Engine) markDirty(keys ...string) {
	for _, k := range keys {
		e.dirty[k] = true
	}
}

// persist writes every dirty key on its own. A failed key stays dirty so the
// next operation retries it.
func (e *Engine) persist(ctx context.Context) error {
	var errs []error
	for _, key := range Keys {
		if !e.dirty[key] {
			continue
		}
		data, err := json.Marshal(e.value(key))
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", key, err))
			continue
		}
		if err := e.store.Save(ctx, key, data); err != nil {
			e.log.Errorf("save %s: %v", key, err)
			errs = append(errs, fmt.Errorf("save %s: %w", key, err))
			continue
		}
		delete(e.dirty, key)
		e.log.Debugf("saved %s (%d bytes)", key, len(data))
	}
	return errors.Join(errs...)
}
