package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tasklist/internal/models"
	"tasklist/internal/session"
	"tasklist/pkg/logger"
)

// UserRepository is the subset of user persistence the service needs.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service handles registration, credential checks and the session lifecycle.
type Service struct {
	users      UserRepository
	sessions   session.Store
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time

	// compared against when the username is unknown so both failure paths cost a bcrypt check
	dummyHash []byte
}

// NewService creates an auth service. cost is clamped to bcrypt's valid range.
func NewService(users UserRepository, sessions session.Store, sessionTTL time.Duration, cost int) *Service {
	cost = min(max(cost, bcrypt.MinCost), bcrypt.MaxCost)
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &Service{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		bcryptCost: cost,
		now:        time.Now,
		dummyHash:  dummy,
	}
}

// Hash returns the bcrypt hash of password.
func (s *Service) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Verify reports whether password matches hash.
func (s *Service) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SignUp is the sign-up form.
type SignUp struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f *SignUp) normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

// bcrypt refuses to hash passwords longer than this.
const maxPasswordBytes = 72

func (f SignUp) validate() error {
	switch {
	case f.Username == "":
		return models.Invalid("username", "username is required")
	case f.Email == "":
		return models.Invalid("email", "email is required")
	case f.Password == "":
		return models.Invalid("password", "password is required")
	case len(f.Password) > maxPasswordBytes:
		return models.Invalid("password", "password must be at most 72 bytes")
	case f.ConfirmPassword == "":
		return models.Invalid("confirm_password", "please confirm the password")
	case f.Password != f.ConfirmPassword:
		return models.Invalid("confirm_password", "passwords do not match")
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return models.Invalid("email", "email is not a valid address")
	}
	return nil
}

// Register validates the form and creates the account. It returns a
// *models.ValidationError for bad input and a *models.DuplicateError when the
// username or email is taken.
func (s *Service) Register(ctx context.Context, form SignUp) (*models.User, error) {
	form.normalize()
	if err := form.validate(); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, "username", form.Username, s.users.FindByUsername); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, "email", form.Email, s.users.FindByEmail); err != nil {
		return nil, err
	}

	hash, err := s.Hash(form.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: form.Username, Email: form.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Info(ctx, "User registered", "user_id", user.ID)
	return user, nil
}

func (s *Service) ensureFree(ctx context.Context, field, value string, find func(context.Context, string) (*models.User, error)) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return &models.DuplicateError{Field: field}
	case errors.Is(err, models.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Authenticate returns the user for username when password matches. Unknown
// users and wrong passwords both yield models.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, models.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.Verify(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

// Credentials is the login form.
type Credentials struct {
	Username string
	Password string
}

// Login authenticates and stores a new session. No session is created on failure.
func (s *Service) Login(ctx context.Context, creds Credentials) (*models.Session, error) {
	user, err := s.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return nil, err
	}
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	logger.Info(ctx, "User logged in", "user_id", user.ID)
	return sess, nil
}

// Resolve returns the live session for id, or session.ErrNotFound.
func (s *Service) Resolve(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, session.ErrNotFound
	}
	return s.sessions.Get(ctx, id)
}

// Logout removes the session. An empty or unknown id is a no-op.
func (s *Service) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.sessions.Delete(ctx, id)
}
