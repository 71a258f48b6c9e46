package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tasklist/internal/models"
)

// ErrInvalidToken is returned for cookies that fail signature or expiry checks.
var ErrInvalidToken = errors.New("invalid session token")

// Codec signs session ids into cookie values so that forged or altered
// cookies are rejected before the store is consulted.
type Codec struct {
	secret []byte
}

// NewCodec returns a Codec using HMAC-SHA256 with secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode returns the cookie value for s.
func (c *Codec) Encode(s *models.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.ID,
		Subject:   strconv.FormatInt(s.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and returns the session id it names.
func (c *Codec) Decode(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

// CookieName is the name of the cookie carrying the signed session token.
const CookieName = "session"
