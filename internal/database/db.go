package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"tasklist/internal/config"
	"tasklist/internal/database/migrations"
	"tasklist/pkg/logger"
)

// Open opens and pings a connection pool for the given driver.
// SQLite connections get foreign keys, WAL and a busy timeout, and a single writer.
func Open(ctx context.Context, driver, url string, poolSize int) (*sql.DB, error) {
	dsn := url
	if driver == config.DriverSQLite {
		dsn = sqliteDSN(url)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(poolSize)
		db.SetMaxIdleConns(max(1, poolSize/2))
	}
	logger.Info(ctx, "Database pool initialized", "driver", driver, "max_open", poolSize)
	return db, nil
}

// FromConfig opens the pool described by cfg.
func FromConfig(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	return Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, cfg.DBPoolSize)
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000", path)
}

// Migrate applies all pending migrations for driver from the embedded filesystem.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	current, err := Version(ctx, db)
	if err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	entries, err := fs.ReadDir(migrations.FS, driver)
	if err != nil {
		return fmt.Errorf("read migrations for %s: %w", driver, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	applied := 0
	for _, name := range files {
		version, err := parseVersion(name)
		if err != nil {
			logger.Warn(ctx, "Skipping non-migration file", "name", name, "error", err)
			continue
		}
		if version <= current {
			continue
		}
		data, err := fs.ReadFile(migrations.FS, driver+"/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := applyMigration(ctx, db, version, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		applied++
		logger.Info(ctx, "Applied migration", "name", name, "version", version)
	}
	if applied > 0 {
		logger.Info(ctx, "Migrations complete", "applied", applied)
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, version int, script string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return err
	}
	return tx.Commit()
}

// Version returns the current schema version (0 before any migration).
func Version(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	return version, err
}

// parseVersion extracts the version number from a filename like "001_init.sql".
func parseVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("invalid migration filename: %s", name)
	}
	var version int
	if _, err := fmt.Sscanf(prefix, "%d", &version); err != nil {
		return 0, fmt.Errorf("parse version from %s: %w", name, err)
	}
	return version, nil
}
