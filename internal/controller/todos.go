package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"tasklist/internal/middleware"
	"tasklist/internal/models"
	"tasklist/internal/tasks"
	"tasklist/pkg/logger"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 500
)

type taskForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	DueDate     string `form:"due_date"`
}

// todo validates the form and builds an unsaved todo for ownerID.
func (f taskForm) todo(ownerID int64) (*models.Todo, error) {
	title := strings.TrimSpace(f.Title)
	description := strings.TrimSpace(f.Description)
	dueDate := strings.TrimSpace(f.DueDate)
	switch {
	case title == "":
		return nil, models.Invalid("title", "title is required")
	case utf8.RuneCountInString(title) > maxTitleLen:
		return nil, models.Invalid("title", "title must be at most 200 characters")
	case utf8.RuneCountInString(description) > maxDescriptionLen:
		return nil, models.Invalid("description", "description must be at most 500 characters")
	case dueDate == "":
		return nil, models.Invalid("due_date", "due date is required")
	}
	due, err := time.Parse(models.DateLayout, dueDate)
	if err != nil {
		return nil, models.Invalid("due_date", "due date must be a valid date (YYYY-MM-DD)")
	}
	return &models.Todo{Title: title, Description: description, DueDate: due, UserID: ownerID}, nil
}

// Dashboard renders the session user's tasks split into overdue, pending and completed.
// Anonymous visitors get the landing variant of the page.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		h.render(c, http.StatusOK, "index.html", gin.H{"Title": "Tasks"})
		return
	}

	todos, err := h.todos.ListByOwner(ctx, sess.UserID)
	if err != nil {
		if isContextErr(err) {
			h.abandoned(c)
			return
		}
		logger.Error(ctx, "Dashboard load failed", "error", err, "user_id", sess.UserID)
		h.fail(c, http.StatusInternalServerError, "Could not load your tasks")
		return
	}
	b := tasks.Classify(todos, h.now())
	h.render(c, http.StatusOK, "index.html", gin.H{
		"Title":     "Tasks",
		"Pending":   b.Pending,
		"Completed": b.Completed,
		"Overdue":   b.Overdue,
	})
}

// NewTaskForm renders the task form.
func (h *Handler) NewTaskForm(c *gin.Context) {
	h.render(c, http.StatusOK, "new_task.html", gin.H{"Title": "New task", "Form": taskForm{}})
}

// NewTask creates a task owned by the session user.
func (h *Handler) NewTask(c *gin.Context) {
	ctx := c.Request.Context()
	sess, _ := middleware.CurrentSession(c)

	var form taskForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		logger.Debug(ctx, "Task form bind failed", "error", err)
	}
	todo, err := form.todo(sess.UserID)
	if err != nil {
		var verr *models.ValidationError
		errors.As(err, &verr)
		h.render(c, http.StatusBadRequest, "new_task.html", gin.H{
			"Title": "New task", "Form": form, "Error": verr.Message,
		})
		return
	}

	if err := h.todos.Create(ctx, todo); err != nil {
		logger.Error(ctx, "Create task failed", "error", err, "user_id", sess.UserID)
		h.render(c, http.StatusInternalServerError, "new_task.html", gin.H{
			"Title": "New task", "Form": form, "Error": "Could not save the task. Please try again.",
		})
		return
	}
	logger.Info(ctx, "Task created", "id", todo.ID, "user_id", sess.UserID)
	h.redirect(c, "/")
}

// CompleteTask marks a task complete.
func (h *Handler) CompleteTask(c *gin.Context) {
	h.mutateTask(c, "complete", h.todos.Complete)
}

// DeleteTask deletes a task.
func (h *Handler) DeleteTask(c *gin.Context) {
	h.mutateTask(c, "delete", h.todos.Delete)
}

// mutateTask applies op to the task in the path. Unknown or malformed ids
// redirect without change; tasks of other users answer 403.
func (h *Handler) mutateTask(c *gin.Context, action string, op func(ctx context.Context, id, ownerID int64) error) {
	ctx := c.Request.Context()
	sess, _ := middleware.CurrentSession(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		logger.Debug(ctx, "Malformed task id", "action", action, "id", c.Param("id"))
		h.redirect(c, "/")
		return
	}

	err = op(ctx, id, sess.UserID)
	switch {
	case err == nil:
		logger.Info(ctx, "Task updated", "action", action, "id", id, "user_id", sess.UserID)
		h.redirect(c, "/")
	case errors.Is(err, models.ErrNotFound):
		h.redirect(c, "/")
	case errors.Is(err, models.ErrForbidden):
		logger.Warn(ctx, "Task owned by another user", "action", action, "id", id, "user_id", sess.UserID)
		h.fail(c, http.StatusForbidden, "You cannot change this task")
	default:
		logger.Error(ctx, "Task update failed", "action", action, "error", err, "id", id)
		h.fail(c, http.StatusInternalServerError, "Could not update the task")
	}
}
