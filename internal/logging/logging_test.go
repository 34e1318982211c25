package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake_FromWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New().FromWriter(&buf).Make()
	require.NoError(t, err)

	l := Component(log.Logger, "workspace")
	l.Info().Str("op", "CreatePage").Msg("applied")
	assert.Contains(t, buf.String(), `"component":"workspace"`)
	assert.Contains(t, buf.String(), `"op":"CreatePage"`)
	assert.Contains(t, buf.String(), `"time"`)
}

func TestMake_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New().FromWriter(&buf).Level("warn").Make()
	require.NoError(t, err)

	log.Logger.Info().Msg("hidden")
	log.Logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestMake_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flowstate.log")
	log, err := New().FromPath(path).Make()
	require.NoError(t, err)
	log.Logger.Info().Msg("to file")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestMake_DefaultDiscards(t *testing.T) {
	log, err := New().Make()
	require.NoError(t, err)
	log.Logger.Info().Msg("nowhere")
	assert.NoError(t, log.Close())
}
