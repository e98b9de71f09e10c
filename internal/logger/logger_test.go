package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/seedance-go/internal/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	cfg := config.Default()
	cfg.Env = "production"

	var buf bytes.Buffer
	log := NewWithWriter(cfg, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("task_id", "cgt-1").Msg("created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "created", entry["message"])
	assert.Equal(t, "cgt-1", entry["task_id"])
	assert.Equal(t, "seedance", entry["service"])
	assert.Equal(t, "production", entry["environment"])
}

func TestNewWithWriter_Console(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "console"

	var buf bytes.Buffer
	log := NewWithWriter(cfg, &buf)
	log.Debug().Msg("visible in development")

	assert.Contains(t, buf.String(), "visible in development")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
