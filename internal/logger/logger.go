// Package logger configures the application's zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/seedance-go/internal/config"
)

// New builds the root logger for cfg, writing to stderr.
func New(cfg *config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds the root logger for cfg, writing to w.
//
// Production always logs JSON. Elsewhere the configured format decides;
// "console" gives the human-friendly writer.
func NewWithWriter(cfg *config.Config, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if !cfg.IsProduction() && cfg.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(cfg.LogLevel()).
		With().
		Timestamp().
		Str("service", "seedance").
		Str("environment", cfg.Env).
		Logger()
}
