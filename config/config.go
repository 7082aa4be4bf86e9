// Package config loads sessionmesh settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the tunable knobs of an embedded sessionmesh instance.
type Config struct {
	// SessionTimeout is the inactivity threshold after which an empty
	// session becomes eligible for eviction.
	SessionTimeout time.Duration `env:"SESSIONMESH_SESSION_TIMEOUT" envDefault:"1h"`
	// ReapInterval is the period between reaper sweeps.
	ReapInterval time.Duration `env:"SESSIONMESH_REAP_INTERVAL" envDefault:"5m"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"SESSIONMESH_LOG_LEVEL" envDefault:"info"`
	// LogFormat is json or text.
	LogFormat string `env:"SESSIONMESH_LOG_FORMAT" envDefault:"json"`
}

// FromEnv loads configuration from SESSIONMESH_* environment variables,
// falling back to defaults.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
