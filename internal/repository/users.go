package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tasklist/internal/models"
	"tasklist/pkg/logger"
)

const userColumns = `id, username, email, password_hash, created_at`

// Users persists accounts.
type Users struct {
	db *sql.DB
}

// NewUsers returns a Users repository on db.
func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// Create inserts user and sets its ID. A taken username or email yields *models.DuplicateError.
func (r *Users) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Username, user.Email, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		err = uniqueViolation(err, "username", "email")
		if !errors.Is(err, models.ErrDuplicate) {
			logger.Error(ctx, "Repository create user failed", "error", err)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID returns the user with id or models.ErrNotFound.
func (r *Users) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByUsername returns the user with username or models.ErrNotFound.
func (r *Users) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByEmail returns the user with email or models.ErrNotFound.
func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *Users) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository find user failed", "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
