package controller

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"tasklist/internal/auth"
	"tasklist/internal/middleware"
	"tasklist/internal/repository"
	"tasklist/internal/session"
)

// Deps are the collaborators shared by all handlers.
type Deps struct {
	DB           *sql.DB
	Auth         *auth.Service
	Users        *repository.Users
	Todos        *repository.Todos
	Sessions     session.Store
	Codec        *session.Codec
	CookieMaxAge int
	SecureCookie bool
}

// Handler serves every route of the application.
type Handler struct {
	db           *sql.DB
	auth         *auth.Service
	users        *repository.Users
	todos        *repository.Todos
	sessions     session.Store
	codec        *session.Codec
	cookieMaxAge int
	secureCookie bool
	now          func() time.Time

	statsGroup singleflight.Group
}

// New builds a Handler from d.
func New(d Deps) *Handler {
	return &Handler{
		db:           d.DB,
		auth:         d.Auth,
		users:        d.Users,
		todos:        d.Todos,
		sessions:     d.Sessions,
		codec:        d.Codec,
		cookieMaxAge: d.CookieMaxAge,
		secureCookie: d.SecureCookie,
		now:          time.Now,
	}
}

// render executes page with data plus the current session, if any.
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if sess, ok := middleware.CurrentSession(c); ok {
		data["Session"] = sess
	}
	c.HTML(status, page, data)
}

func (h *Handler) fail(c *gin.Context, status int, title string) {
	h.render(c, status, "error.html", gin.H{"Title": title})
}

func (h *Handler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// statusClientClosedRequest is recorded when the client went away mid-request.
const statusClientClosedRequest = 499

// abandoned ends a request whose context was cancelled without rendering a page.
func (h *Handler) abandoned(c *gin.Context) {
	c.AbortWithStatus(statusClientClosedRequest)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Health returns 200 if the process is alive. Used by load balancers.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if the database and the session store are reachable.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
		return
	}
	if err := h.sessions.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "session store unavailable"})
		return
	}
	c.String(http.StatusOK, "OK")
}
