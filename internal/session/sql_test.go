package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"tasklist/internal/database/databasetest"
	"tasklist/internal/models"
	"tasklist/internal/repository"
)

func setupSQLStore(t *testing.T) (*SQLStore, *models.User) {
	t.Helper()
	db := databasetest.Open(t)
	u := &models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "h"}
	if err := repository.NewUsers(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewSQLStore(db), u
}

func TestSQLStore_SaveGetDelete(t *testing.T) {
	store, u := setupSQLStore(t)
	ctx := context.Background()

	sess := &models.Session{ID: uuid.NewString(), UserID: u.ID, Username: u.Username, ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UserID != u.ID || got.Username != "ada" {
		t.Errorf("Get() = %+v; want user %d ada", got, u.ID)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v; want ErrNotFound", err)
	}
	// Deleting again is a no-op.
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestSQLStore_Expired(t *testing.T) {
	store, u := setupSQLStore(t)
	ctx := context.Background()

	sess := &models.Session{ID: uuid.NewString(), UserID: u.ID, Username: u.Username, ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() expired error = %v; want ErrNotFound", err)
	}

	store.now = time.Now
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session not removed: error = %v", err)
	}
}

func TestSQLStore_Ping(t *testing.T) {
	store, _ := setupSQLStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
