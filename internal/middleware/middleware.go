package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tasklist/internal/models"
	"tasklist/internal/session"
	"tasklist/pkg/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	sessionKey      = "session"
)

// RequestLogger tags the request context with a request id and writes one access log line.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, id)

		c.Next()

		logger.Info(ctx, "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
	}
}

// SessionResolver loads a live session by id.
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*models.Session, error)
}

// LoadSession attaches the session named by the session cookie, if any.
// Invalid, expired or unknown cookies are cleared and the request continues anonymously.
func LoadSession(resolver SessionResolver, codec *session.Codec, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		value, err := c.Cookie(session.CookieName)
		if err != nil || value == "" {
			c.Next()
			return
		}

		id, err := codec.Decode(value)
		if err != nil {
			logger.Debug(ctx, "Session cookie rejected", "error", err)
			ClearSessionCookie(c, secure)
			c.Next()
			return
		}
		sess, err := resolver.Resolve(ctx, id)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.Error(ctx, "Session lookup failed", "error", err)
			}
			ClearSessionCookie(c, secure)
			c.Next()
			return
		}
		SetSession(c, sess)
		c.Next()
	}
}

// RequireSession redirects anonymous requests to the login page.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); !ok {
			logger.Debug(c.Request.Context(), "Anonymous request to protected route", "path", c.Request.URL.Path)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSession attaches sess to the request.
func SetSession(c *gin.Context, sess *models.Session) {
	c.Set(sessionKey, sess)
}

// CurrentSession returns the session attached by LoadSession.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*models.Session)
	return sess, ok && sess != nil
}

// SetSessionCookie writes the signed session token.
func SetSessionCookie(c *gin.Context, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, value, maxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", secure, true)
}
