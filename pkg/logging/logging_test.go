package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestNewText(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New("warn", "text", buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shortfall", "employee", "Alice", "missing", 2)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=shortfall")
	require.Contains(t, out, "employee=Alice")
	require.Contains(t, out, "missing=2")
}

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New("debug", "json", buf)
	require.NoError(t, err)

	logger.Debug("assigned shift", "day", "Monday")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "assigned shift", entry["msg"])
	require.Equal(t, "Monday", entry["day"])
	require.Equal(t, "DEBUG", entry["level"])
}

func TestNewUnknownLevelFallsBack(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New("loud", "text", buf)
	require.Error(t, err)
	require.NotNil(t, logger)

	logger.Debug("dropped")
	logger.Info("kept")
	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "kept")
}
