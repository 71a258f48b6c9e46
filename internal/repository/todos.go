package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tasklist/internal/models"
	"tasklist/pkg/logger"
)

const todoColumns = `id, title, description, completed, due_date, user_id, created_at`

// Todos persists tasks. Mutations of an existing task are checked against its owner.
type Todos struct {
	db *sql.DB
}

// NewTodos returns a Todos repository on db.
func NewTodos(db *sql.DB) *Todos {
	return &Todos{db: db}
}

// Create inserts a new todo and sets its ID.
func (r *Todos) Create(ctx context.Context, todo *models.Todo) error {
	todo.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO todos (title, description, completed, due_date, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		todo.Title, todo.Description, todo.Completed, todo.DueDate.Format(models.DateLayout),
		todo.UserID, todo.CreatedAt).Scan(&todo.ID)
	if err != nil {
		logger.Error(ctx, "Repository create todo failed", "error", err, "user_id", todo.UserID)
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// FindByID returns the todo with id or models.ErrNotFound.
func (r *Todos) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository find todo failed", "error", err, "id", id)
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return t, nil
}

// ListByOwner returns every todo of userID ordered by due date.
func (r *Todos) ListByOwner(ctx context.Context, userID int64) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = $1 ORDER BY due_date, id`, userID)
	if err != nil {
		logger.Error(ctx, "Repository list todos failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			logger.Error(ctx, "Repository scan todo failed", "error", err)
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

// Complete marks todo id as completed. It returns models.ErrNotFound when the
// todo does not exist and models.ErrForbidden when ownerID does not own it.
func (r *Todos) Complete(ctx context.Context, id, ownerID int64) error {
	return r.mutateOwned(ctx, id, ownerID, `UPDATE todos SET completed = TRUE WHERE id = $1`)
}

// Delete removes todo id with the same ownership rules as Complete.
func (r *Todos) Delete(ctx context.Context, id, ownerID int64) error {
	return r.mutateOwned(ctx, id, ownerID, `DELETE FROM todos WHERE id = $1`)
}

func (r *Todos) mutateOwned(ctx context.Context, id, ownerID int64, stmt string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var owner int64
	err = tx.QueryRowContext(ctx, `SELECT user_id FROM todos WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository load todo owner failed", "error", err, "id", id)
		return fmt.Errorf("load todo owner: %w", err)
	}
	if owner != ownerID {
		return models.ErrForbidden
	}

	if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
		logger.Error(ctx, "Repository mutate todo failed", "error", err, "id", id)
		return fmt.Errorf("mutate todo: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*models.Todo, error) {
	var t models.Todo
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate, &t.UserID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

const insertBatchSize = 200

// CreateBatch inserts todos in multi-row statements inside one transaction.
// IDs are not populated.
func (r *Todos) CreateBatch(ctx context.Context, todos []models.Todo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for start := 0; start < len(todos); start += insertBatchSize {
		end := min(start+insertBatchSize, len(todos))
		placeholders := make([]string, 0, end-start)
		args := make([]any, 0, (end-start)*6)
		for i, t := range todos[start:end] {
			placeholders = append(placeholders, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				6*i+1, 6*i+2, 6*i+3, 6*i+4, 6*i+5, 6*i+6))
			args = append(args, t.Title, t.Description, t.Completed, t.DueDate.Format(models.DateLayout), t.UserID, now)
		}
		q := `INSERT INTO todos (title, description, completed, due_date, user_id, created_at) VALUES ` +
			strings.Join(placeholders, ",")
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			logger.Error(ctx, "Repository batch insert failed", "error", err, "offset", start)
			return fmt.Errorf("insert batch at %d: %w", start, err)
		}
	}
	return tx.Commit()
}
