package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tasklist/internal/models"
	"tasklist/pkg/logger"
)

// SQLStore keeps sessions in the sessions table of the application database.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLStore returns a Store on db. The sessions table comes from the migrations.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Save(ctx context.Context, sess *models.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, username, expires_at) VALUES ($1, $2, $3, $4)`,
		sess.ID, sess.UserID, sess.Username, sess.ExpiresAt.UTC())
	if err != nil {
		logger.Error(ctx, "Session insert failed", "error", err)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get returns the live session with id. Expired rows are removed on sight.
func (s *SQLStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, username, expires_at FROM sessions WHERE id = $1`, id).
		Scan(&sess.ID, &sess.UserID, &sess.Username, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Session lookup failed", "error", err)
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess.IsExpired(s.now()) {
		if err := s.Delete(ctx, id); err != nil {
			logger.Warn(ctx, "Expired session cleanup failed", "error", err)
		}
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		logger.Error(ctx, "Session delete failed", "error", err)
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
