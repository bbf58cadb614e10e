package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(&buf, "debug", "json"), "worker")

	log.Info().Int("batch", 3).Msg("flushed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "flushed", line["message"])
	assert.Equal(t, "worker", line["component"])
	assert.Equal(t, "pathfinder", line["service"])
	assert.EqualValues(t, 3, line["batch"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "json")

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
