package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/menus/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory menus store, closed on cleanup.
// The pool is pinned to one connection, so it cannot exercise lock contention;
// use NewFileTestDB for that.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return openForTest(t, ":memory:")
}

// NewFileTestDB returns a migrated WAL store under t.TempDir(). Every pooled
// connection sees the same file, so concurrent writers really contend.
func NewFileTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return openForTest(t, filepath.Join(t.TempDir(), "menus.db"))
}

func openForTest(t testing.TB, path string) *sql.DB {
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test store at %s", path)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps database in the production unit of work.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
