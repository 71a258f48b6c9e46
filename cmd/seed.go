package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tasklist/internal/auth"
	"tasklist/internal/models"
	"tasklist/internal/repository"
	"tasklist/internal/session"
	"tasklist/pkg/logger"
)

func seedCmd() *cobra.Command {
	var (
		username string
		password string
		count    int
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo user with tasks spread around today",
		Long: `Create a demo user (or reuse it when the username exists) and add tasks
whose due dates run from the past into the future, so every dashboard
section has entries. Every fourth task is already completed.

Examples:
  tasklist seed
  tasklist seed --username demo --password secret --count 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative")
			}
			ctx := cmd.Context()
			cfg, db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			users := repository.NewUsers(db)
			svc := auth.NewService(users, session.NewSQLStore(db), cfg.SessionMaxAge(), cfg.BcryptCost)
			user, err := svc.Register(ctx, auth.SignUp{
				Username:        username,
				Email:           username + "@example.com",
				Password:        password,
				ConfirmPassword: password,
			})
			var dup *models.DuplicateError
			switch {
			case errors.As(err, &dup) && dup.Field == "username":
				if user, err = users.FindByUsername(ctx, username); err != nil {
					return fmt.Errorf("load existing user: %w", err)
				}
				logger.Info(ctx, "Seed user exists; adding tasks", "user_id", user.ID)
			case err != nil:
				return fmt.Errorf("create seed user: %w", err)
			}

			start := time.Now()
			if err := repository.NewTodos(db).CreateBatch(ctx, seedTodos(user.ID, count, start)); err != nil {
				return err
			}
			logger.Infof(ctx, "Seeded %d tasks for %s in %v", count, user.Username, time.Since(start))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "demo", "username of the seed account")
	cmd.Flags().StringVarP(&password, "password", "p", "demo-password", "password of the seed account")
	cmd.Flags().IntVarP(&count, "count", "n", 50, "number of tasks to create")
	return cmd
}

// seedTodos spreads n due dates evenly around today.
func seedTodos(ownerID int64, n int, today time.Time) []models.Todo {
	todos := make([]models.Todo, n)
	for i := range todos {
		offset := i - n/2
		todos[i] = models.Todo{
			Title:       fmt.Sprintf("Task %d", i+1),
			Description: fmt.Sprintf("Seeded task due in %d days", offset),
			DueDate:     today.AddDate(0, 0, offset),
			Completed:   i%4 == 3,
			UserID:      ownerID,
		}
	}
	return todos
}
