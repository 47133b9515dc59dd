package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mongotesting/contacts-service/internal/config"
	"github.com/mongotesting/contacts-service/internal/pkg/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "warn", Format: config.LogFormatJSON}, &buf)
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	logger.Warn().Str("collection", "contacts").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "contacts", entry["collection"])
	assert.Contains(t, entry, "time")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "debug", Format: config.LogFormatConsole}, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNew_EmptyLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Format: config.LogFormatJSON}, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("dropped")
	assert.Empty(t, buf.String())
	logger.Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
