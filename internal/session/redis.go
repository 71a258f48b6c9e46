package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tasklist/internal/models"
	"tasklist/pkg/logger"
)

const keyPrefix = "session:"

// NewRedisClient parses url, applies poolSize and pings the server.
func NewRedisClient(ctx context.Context, url string, poolSize int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info(ctx, "Redis client initialized", "pool_size", opts.PoolSize)
	return client, nil
}

// RedisStore keeps sessions as JSON values that expire with the session.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore returns a Store backed by client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, sess *models.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("save session: already expired")
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.ID), b, ttl).Err(); err != nil {
		logger.Error(ctx, "Redis set session failed", "error", err)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	b, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Redis get session failed", "error", err)
		return nil, fmt.Errorf("get session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		logger.Warn(ctx, "Corrupt session value in Redis", "error", err, "key", key(id))
		return nil, ErrNotFound
	}
	if sess.IsExpired(s.now()) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		logger.Error(ctx, "Redis delete session failed", "error", err)
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
