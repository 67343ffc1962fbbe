// Package config loads actioncore settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by every command. Command line flags
// override these values.
type Config struct {
	RulesetDir    string        `env:"ACTIONCORE_RULESET_DIR"`
	ReportDB      string        `env:"ACTIONCORE_REPORT_DB"`
	LogLevel      string        `env:"ACTIONCORE_LOG_LEVEL" envDefault:"warn"`
	Debug         bool          `env:"ACTIONCORE_DEBUG"`
	WatchDebounce time.Duration `env:"ACTIONCORE_WATCH_DEBOUNCE" envDefault:"250ms"`
	Workers       int           `env:"ACTIONCORE_WORKERS" envDefault:"4"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("ACTIONCORE_WORKERS must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}
