package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config carries every runtime setting. Values come from the environment,
// optionally seeded from a .env file in the working directory.
type Config struct {
	APIURL     string        `env:"GYMATTEND_API_URL" envDefault:"http://localhost:4000"`
	APIToken   string        `env:"GYMATTEND_API_TOKEN"`
	APITimeout time.Duration `env:"GYMATTEND_API_TIMEOUT" envDefault:"0s"`

	Home      string `env:"GYMATTEND_HOME"`
	LogPath   string `env:"GYMATTEND_LOG_PATH"`
	LogLevel  string `env:"GYMATTEND_LOG_LEVEL" envDefault:"INFO"`
	LogFormat string `env:"GYMATTEND_LOG_FORMAT" envDefault:"json"`
}

// Load reads .env (when present) and the process environment, then resolves
// the data directory and log path.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	home, err := ResolveHome(cfg.Home)
	if err != nil {
		return Config{}, fmt.Errorf("resolve home: %w", err)
	}
	cfg.Home = home

	switch {
	case cfg.LogPath == "":
		cfg.LogPath = filepath.Join(home, LogFileName)
	case isStream(cfg.LogPath):
	default:
		if cfg.LogPath, err = expandHome(cfg.LogPath); err != nil {
			return Config{}, fmt.Errorf("resolve log path: %w", err)
		}
	}

	return cfg, nil
}

func isStream(path string) bool {
	return strings.EqualFold(path, "stderr") || strings.EqualFold(path, "stdout")
}
