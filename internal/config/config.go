// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything tunable from the environment. Gameplay state
// never lives here; these knobs pick the randomness, the logging, and the
// starting preferences.
type Config struct {
	// Seed fixes the random source for reproducible hunts. Zero keeps the
	// default crypto source.
	Seed int64 `env:"WUMPUS_SEED"`
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `env:"WUMPUS_LOG_LEVEL" envDefault:"info"`
	// LogFile receives JSON logs. Empty disables logging entirely, since
	// stdout belongs to the face.
	LogFile string `env:"WUMPUS_LOG_FILE"`
	// Telemetry turns on OTLP trace export.
	Telemetry bool `env:"WUMPUS_TELEMETRY" envDefault:"false"`
	// ActiveWumpus starts hunts with the roaming wumpus enabled.
	ActiveWumpus bool `env:"WUMPUS_ACTIVE" envDefault:"false"`
	// Quiet starts hunts with sound off.
	Quiet bool `env:"WUMPUS_QUIET" envDefault:"false"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
