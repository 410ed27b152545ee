package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string      `yaml:"log_level" env:"CAKE_LOG_LEVEL" env-default:"warn"`
	Storage     Storage     `yaml:"storage"`
	Economy     Economy     `yaml:"economy"`
	Timer       Timer       `yaml:"timer"`
	Progression Progression `yaml:"progression"`
}

type Storage struct {
	Backend string `yaml:"backend" env:"CAKE_STORAGE" env-default:"sqlite"`
	// Path is a database file for sqlite and a directory for file; empty
	// means the backend default under the home directory.
	Path string `yaml:"path" env:"CAKE_DATA_PATH"`
}

type Economy struct {
	StartingCoins   int `yaml:"starting_coins" env:"CAKE_STARTING_COINS" env-default:"100"`
	StartingBerries int `yaml:"starting_berries" env:"CAKE_STARTING_BERRIES" env-default:"50"`
}

type Timer struct {
	MinMinutes int `yaml:"min_minutes" env:"CAKE_TIMER_MIN" env-default:"1"`
	MaxMinutes int `yaml:"max_minutes" env:"CAKE_TIMER_MAX" env-default:"180"`
}

type Progression struct {
	MultiLevelUp bool `yaml:"multi_level_up" env:"CAKE_MULTI_LEVEL_UP" env-default:"false"`
}

// Load reads the YAML file at path (if it exists) and overlays the
// environment. An empty path or a missing file means env only.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("read config %q: %w", path, err)
			}
			return cfg, cfg.Validate()
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat config %q: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("storage.backend must be one of: sqlite, file, memory (got %q)", c.Storage.Backend)
	}
	if c.Economy.StartingCoins < 0 || c.Economy.StartingBerries < 0 {
		return errors.New("starting balances must not be negative")
	}
	if c.Timer.MinMinutes < 1 {
		return errors.New("timer.min_minutes must be at least 1")
	}
	if c.Timer.MinMinutes > c.Timer.MaxMinutes {
		return errors.New("timer.min_minutes must not exceed timer.max_minutes")
	}
	return nil
}
