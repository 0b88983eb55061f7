package log

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriter_EmitsJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, WithLevel(zerolog.DebugLevel), WithComponent("hybrid"))

	l.Debug().Str("peer", "bob").Msg("session key accepted")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "hybrid", line["component"])
	assert.Equal(t, "bob", line["peer"])
	assert.Equal(t, "session key accepted", line["message"])
}

func TestWithLevel_Filters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, WithLevel(zerolog.WarnLevel))
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestGlobal(t *testing.T) {
	prev := G
	t.Cleanup(func() { SetGlobalLogger(prev) })

	var buf bytes.Buffer
	SetGlobalLogger(NewWriter(&buf))
	SetGlobalLevel(zerolog.ErrorLevel)
	Info().Msg("dropped")
	assert.Zero(t, buf.Len())
	Error().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestError_AttachesStackOfWrappedErrors(t *testing.T) {
	prev := G
	t.Cleanup(func() { SetGlobalLogger(prev) })

	var buf bytes.Buffer
	SetGlobalLogger(NewWriter(&buf))

	Error().Err(errors.Wrap(errors.New("bind: address in use"), "listen")).Msg("relay exited")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "listen: bind: address in use", line["error"])
	stack, ok := line["stack"].([]any)
	require.True(t, ok, "stack field: %v", line["stack"])
	assert.NotEmpty(t, stack)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.log")
	l, err := NewFile(FileConfig{Path: path})
	require.NoError(t, err)
	l.Info().Msg("to file")
	require.NoError(t, l.Close())

	_, err = NewFile(FileConfig{})
	assert.Error(t, err)
}
