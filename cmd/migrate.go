package main

import (
	"github.com/spf13/cobra"

	"tasklist/internal/database"
	"tasklist/pkg/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			version, err := database.Version(ctx, db)
			if err != nil {
				return err
			}
			logger.Info(ctx, "Schema up to date", "version", version)
			return nil
		},
	}
}
