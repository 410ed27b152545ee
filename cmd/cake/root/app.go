package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cakecrumb/internal/config"
	"cakecrumb/internal/engine"
	"cakecrumb/internal/logging"
	"cakecrumb/internal/storage"
)

func openEngine(ctx context.Context) (*engine.Engine, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.NewConsole(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(ctx, cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Errorf("close store: %v", err)
		}
		_ = log.Sync()
	}

	eng, err := engine.New(ctx, store,
		engine.WithLogger(log),
		engine.WithRules(engine.Rules{
			StartingCoins:   cfg.Economy.StartingCoins,
			StartingBerries: cfg.Economy.StartingBerries,
			MinTimerMinutes: cfg.Timer.MinMinutes,
			MaxTimerMinutes: cfg.Timer.MaxMinutes,
			MultiLevelUp:    cfg.Progression.MultiLevelUp,
		}),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}

func resolveTask(eng *engine.Engine, frag string) (engine.Task, error) {
	t, err := eng.FindTask(frag)
	if err != nil {
		return engine.Task{}, describeLookup("task", frag, err)
	}
	return t, nil
}

func resolveTimer(eng *engine.Engine, frag string) (engine.TimerSession, error) {
	s, err := eng.FindTimer(frag)
	if err != nil {
		return engine.TimerSession{}, describeLookup("timer", frag, err)
	}
	return s, nil
}

func describeLookup(kind, frag string, err error) error {
	switch {
	case errors.Is(err, engine.ErrAmbiguous):
		return fmt.Errorf("%s %q matches more than one id; use more characters", kind, frag)
	case errors.Is(err, engine.ErrNotFound):
		return fmt.Errorf("%s %q not found", kind, frag)
	default:
		return err
	}
}
