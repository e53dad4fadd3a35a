package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/genops-api/internal/config"
	"github.com/phrazzld/genops-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := logger.ParseLevel(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestSetupWithWriter_FiltersByLevel(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	l := logger.SetupWithWriter(config.ServerConfig{LogLevel: "warn"}, &buf)
	l.Info("hidden")
	l.Warn("shown", "key", "value")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Same(t, l, slog.Default())
}

func TestSetupWithWriter_InvalidLevelWarns(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	logger.SetupWithWriter(config.ServerConfig{LogLevel: "loud"}, &buf)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "loud", entries[0]["configured_level"])
}

func TestContextLogger(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil)).With("trace_id", "abc")

	ctx := logger.WithLogger(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))

	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))

	fallback := slog.New(slog.NewTextHandler(&buf, nil))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
}
