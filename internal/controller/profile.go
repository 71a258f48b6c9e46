package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasklist/internal/middleware"
	"tasklist/internal/models"
	"tasklist/internal/tasks"
	"tasklist/pkg/logger"
)

type profileView struct {
	User  *models.User
	Stats tasks.Stats
}

// Profile renders bucket counts and percentages for the session user.
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	sess, _ := middleware.CurrentSession(c)

	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		h.fail(c, http.StatusNotFound, "Profile not found")
		return
	}
	if userID != sess.UserID {
		logger.Warn(ctx, "Profile of another user requested", "user_id", sess.UserID, "target", userID)
		h.fail(c, http.StatusForbidden, "You can only view your own profile")
		return
	}

	// Concurrent loads of the same profile share one set of queries.
	v, err, _ := h.statsGroup.Do(strconv.FormatInt(userID, 10), func() (any, error) {
		return h.loadProfile(context.WithoutCancel(ctx), userID)
	})
	switch {
	case errors.Is(err, models.ErrNotFound):
		h.fail(c, http.StatusNotFound, "Profile not found")
		return
	case err != nil:
		if isContextErr(err) {
			h.abandoned(c)
			return
		}
		logger.Error(ctx, "Profile load failed", "error", err, "user_id", userID)
		h.fail(c, http.StatusInternalServerError, "Could not load the profile")
		return
	}
	view := v.(*profileView)
	h.render(c, http.StatusOK, "profile.html", gin.H{
		"Title": "Profile",
		"User":  view.User,
		"Stats": view.Stats,
	})
}

func (h *Handler) loadProfile(ctx context.Context, userID int64) (*profileView, error) {
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	todos, err := h.todos.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &profileView{
		User:  user,
		Stats: tasks.Summarize(tasks.Classify(todos, h.now())),
	}, nil
}
