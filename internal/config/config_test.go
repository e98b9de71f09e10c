package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VOLCES_API_KEY", "ark-0123456789")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ark-0123456789", cfg.APIKey)
	assert.Equal(t, DefaultBaseHost, cfg.BaseHost)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Relay.Port)
	assert.Equal(t, []string{"*"}, cfg.Relay.CORSAllowedOrigins)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VOLCES_API_KEY", "ark-0123456789")
	t.Setenv("VOLCES_BASE_HOST", "http://localhost:9000")
	t.Setenv("VOLCES_TIMEOUT", "5s")
	t.Setenv("VOLCES_ENV", "production")
	t.Setenv("VOLCES_LOGGING_LEVEL", "warn")
	t.Setenv("VOLCES_RELAY_PORT", "9999")
	t.Setenv("VOLCES_RELAY_READ_TIMEOUT", "2s")
	t.Setenv("VOLCES_RELAY_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("VOLCES_RELAY_RATE_LIMIT", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.BaseHost)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel())
	assert.Equal(t, "9999", cfg.Relay.Port)
	assert.Equal(t, 2*time.Second, cfg.Relay.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Relay.WriteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Relay.CORSAllowedOrigins)
	assert.InDelta(t, 2.5, cfg.Relay.RateLimit, 0.0001)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing api key", env: map[string]string{"VOLCES_API_KEY": ""}},
		{name: "short api key", env: map[string]string{"VOLCES_API_KEY": "short"}},
		{name: "bad base host", env: map[string]string{"VOLCES_API_KEY": "ark-0123456789", "VOLCES_BASE_HOST": "api.volces.com"}},
		{name: "bad env", env: map[string]string{"VOLCES_API_KEY": "ark-0123456789", "VOLCES_ENV": "staging"}},
		{name: "bad level", env: map[string]string{"VOLCES_API_KEY": "ark-0123456789", "VOLCES_LOGGING_LEVEL": "verbose"}},
		{name: "bad format", env: map[string]string{"VOLCES_API_KEY": "ark-0123456789", "VOLCES_LOGGING_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "api_key", envKey("VOLCES_API_KEY"))
	assert.Equal(t, "logging.level", envKey("VOLCES_LOGGING_LEVEL"))
	assert.Equal(t, "relay.cors_allowed_origins", envKey("VOLCES_RELAY_CORS_ALLOWED_ORIGINS"))
	assert.Equal(t, "base_host", envKey("VOLCES_BASE_HOST"))
}
