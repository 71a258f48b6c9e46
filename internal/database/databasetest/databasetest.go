// Package databasetest opens migrated SQLite databases for tests.
package databasetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"tasklist/internal/config"
	"tasklist/internal/database"
)

// Open returns a migrated SQLite database in t.TempDir, closed on cleanup.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, config.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), 1)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(ctx, db, config.DriverSQLite); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
