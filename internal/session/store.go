// Package session keeps server-side login state keyed by an opaque id.
// The browser only ever holds a signed token naming that id.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tasklist/internal/config"
	"tasklist/internal/models"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store persists sessions. Delete of an absent id is not an error.
type Store interface {
	Save(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// NewStore builds the backend selected by cfg.SessionBackend.
func NewStore(ctx context.Context, cfg *config.Config, db *sql.DB) (Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPoolSize)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	case config.SessionBackendDatabase:
		return NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
