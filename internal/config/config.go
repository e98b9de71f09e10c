// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when one exists), loads them into structured Go types and validates
// them so callers fail fast on bad or missing configuration.
//
// Variables use the VOLCES_ prefix. Nested blocks are addressed with
// their section name, e.g. VOLCES_LOGGING_LEVEL -> logging.level and
// VOLCES_RELAY_PORT -> relay.port.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment before
	// anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	envPrefix = "VOLCES_"

	// DefaultBaseHost is the public Ark endpoint host.
	DefaultBaseHost = "https://ark.cn-beijing.volces.com"
)

// sections are the nested blocks whose env keys are split on the first
// underscore after the prefix.
var sections = []string{"logging", "relay"}

// Config is the root configuration object.
type Config struct {
	APIKey       string        `koanf:"api_key" validate:"required,min=10"`
	BaseHost     string        `koanf:"base_host" validate:"required,http_url"`
	Timeout      time.Duration `koanf:"timeout" validate:"min=1s"`
	PollInterval time.Duration `koanf:"poll_interval" validate:"min=100ms"`
	Env          string        `koanf:"env" validate:"required,oneof=development production"`
	Logging      LoggingConfig `koanf:"logging"`
	Relay        RelayConfig   `koanf:"relay"`
}

// RelayConfig groups settings for the validating relay server.
type RelayConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"min=1s"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"min=1s"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,min=1"`
	// RateLimit is the sustained number of requests per second allowed per
	// client IP. Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// Default returns the configuration used for every value the
// environment does not set.
func Default() *Config {
	return &Config{
		BaseHost:     DefaultBaseHost,
		Timeout:      30 * time.Second,
		PollInterval: 5 * time.Second,
		Env:          "development",
		Logging:      DefaultLoggingConfig(),
		Relay: RelayConfig{
			Port:               "8080",
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       60 * time.Second,
			IdleTimeout:        120 * time.Second,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          10,
		},
	}
}

// Load reads the environment on top of Default and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal config")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	if err := cfg.Logging.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid logging config")
	}

	return cfg, nil
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// envKey maps VOLCES_RELAY_READ_TIMEOUT to relay.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}
