package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/memory-care.db", cfg.DatabasePath)
	assert.Equal(t, time.Hour, cfg.MissedReminderInterval)
	assert.Equal(t, 6*time.Hour, cfg.GameActivityInterval)
	assert.Equal(t, 30, cfg.ChatRatePerMinute)
	assert.NotNil(t, cfg.Location())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\ntimezone: Europe/London\nlog_level: debug\n"), 0600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Europe/London", cfg.Location().String())
}

func TestLoad_RejectsUnknownTimezone(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEZONE")
}
