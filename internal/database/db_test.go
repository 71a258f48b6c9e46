package database

import (
	"context"
	"path/filepath"
	"testing"

	"tasklist/internal/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), 4)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d; want 1", fk)
	}
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), 1)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if err := Migrate(ctx, db, config.DriverSQLite); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	// Second run is a no-op.
	if err := Migrate(ctx, db, config.DriverSQLite); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}

	version, err := Version(ctx, db)
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if version != 2 {
		t.Errorf("Version() = %d; want 2", version)
	}

	for _, table := range []string{"users", "todos", "sessions"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"001_init.sql", 1, false},
		{"012_add_index.sql", 12, false},
		{"init.sql", 0, true},
		{"abc_init.sql", 0, true},
	}
	for _, tt := range tests {
		got, err := parseVersion(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseVersion(%q) error = %v; wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseVersion(%q) = %d; want %d", tt.name, got, tt.want)
		}
	}
}
