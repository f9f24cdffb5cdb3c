package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	level, err = parseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	_, err = parseLevel("chatty")
	assert.Error(t, err)
}

func TestSetup_WritesToFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "memory-care.log")
	logger, flush, err := Setup(Options{Level: "info", Format: "console", File: path})
	require.NoError(t, err)

	logger.Info("reminder created", "reminder_id", "r-1")
	logger.Debug("suppressed below level")
	flush()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "reminder created")
	assert.Contains(t, string(content), "r-1")
	assert.NotContains(t, string(content), "suppressed below level")
}

func TestSetup_RejectsBadLevel(t *testing.T) {
	_, _, err := Setup(Options{Level: "loud"})
	assert.Error(t, err)
}
