package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tasklist/internal/config"
	"tasklist/internal/database"
	"tasklist/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "Tasklist - multi-user to-do web application",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase loads config, opens the pool and brings the schema up to date.
func openDatabase(ctx context.Context) (*config.Config, *sql.DB, error) {
	cfg := config.Get()
	logger.SetLevel(cfg.LogLevel)

	db, err := database.FromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	if err := database.Migrate(ctx, db, cfg.DatabaseDriver); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("schema migration: %w", err)
	}
	return cfg, db, nil
}
