// Package testutil opens migrated throwaway databases for tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/database"
)

// NewDB opens a migrated sqlite database in a per-test temp dir.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// SeedTenant inserts a tenant and returns its id.
func SeedTenant(t *testing.T, db *sql.DB, slug, name string) int {
	t.Helper()

	res, err := db.Exec("INSERT INTO tenants (slug, name) VALUES (?, ?)", slug, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

// SeedUser inserts an editor account and returns its id.
func SeedUser(t *testing.T, db *sql.DB, username string) int {
	t.Helper()

	res, err := db.Exec("INSERT INTO users (username, display_name) VALUES (?, ?)", username, username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}
