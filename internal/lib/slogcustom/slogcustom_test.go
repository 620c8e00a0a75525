package slogcustom

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHandler(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	logger := slog.New(NewCustomHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	logger.With("component", "ws").WithGroup("play").Info("answered", "index", 2)
	logger.Warn("slow")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INFO: answered component=ws play.index=2")
	assert.Contains(t, lines[1], "WARN: slow")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestCustomHandlerLevelVar(t *testing.T) {
	var level slog.LevelVar
	level.Set(slog.LevelError)
	h := NewCustomHandler(&bytes.Buffer{}, &level)

	assert.False(t, h.Enabled(t.Context(), slog.LevelWarn))
	level.Set(slog.LevelDebug)
	assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
}
