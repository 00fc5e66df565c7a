package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("warn"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
	assert.Equal(t, InfoLevel, ParseLevel("shouting"))
}

func TestLoggerWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: InfoLevel, Output: &buf})

	l.Info("record stored")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "record stored", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: WarnLevel, Output: &buf})

	l.Debug("noise")
	l.Info("still noise")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: InfoLevel, Output: &buf}).
		WithFields(map[string]interface{}{"entity": "patient", "entity_id": "P001"})

	l.Info("created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "patient", entry["entity"])
	assert.Equal(t, "P001", entry["entity_id"])
}
