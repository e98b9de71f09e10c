package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	// An empty level falls back to a per-environment default.
	Level string `koanf:"level"`

	// Format selects the output format, "json" or "console".
	Format string `koanf:"format"`
}

// DefaultLoggingConfig provides the defaults used when nothing is set.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "",
		Format: "json",
	}
}

var validLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the level and format against their allowed values.
func (c LoggingConfig) Validate() error {
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Format)
	}
	return nil
}

// LogLevel returns the effective log level.
//
// Without an explicit level production logs at info and everything
// else at debug.
func (c *Config) LogLevel() zerolog.Level {
	level := c.Logging.Level
	if level == "" {
		level = "debug"
		if c.IsProduction() {
			level = "info"
		}
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return parsed
}
