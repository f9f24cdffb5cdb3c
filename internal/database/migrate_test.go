package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Success(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, Migrate(context.Background(), db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, migrationFileCount(t), count)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db), "second migration should not fail")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, migrationFileCount(t), count)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(context.Background(), db))

	expectedTables := []string{
		"users", "api_tokens", "profiles", "connections", "reminders",
		"game_scores", "mood_entries", "chat_messages", "notifications",
	}
	for _, table := range expectedTables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %q not found", table)
	}
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 1, extractVersion("001_initial.up.sql"))
	assert.Equal(t, 12, extractVersion("012_more.up.sql"))
	assert.Equal(t, 0, extractVersion("initial.up.sql"))
}

func migrationFileCount(t *testing.T) int {
	t.Helper()
	_, thisFile, _, _ := runtime.Caller(0)
	entries, err := os.ReadDir(filepath.Join(filepath.Dir(thisFile), "migrations"))
	require.NoError(t, err)
	want := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			want++
		}
	}
	return want
}
