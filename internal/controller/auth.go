package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"tasklist/internal/auth"
	"tasklist/internal/middleware"
	"tasklist/internal/models"
	"tasklist/pkg/logger"
)

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type signUpForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// LoginForm renders the login page.
func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Form": loginForm{}})
}

// Token checks credentials, starts a session and redirects to the dashboard.
// Bad credentials re-render the form with 401 and no session.
func (h *Handler) Token(c *gin.Context) {
	ctx := c.Request.Context()
	var form loginForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		logger.Debug(ctx, "Login form bind failed", "error", err)
	}
	echo := loginForm{Username: form.Username}

	sess, err := h.auth.Login(ctx, auth.Credentials{Username: form.Username, Password: form.Password})
	if errors.Is(err, models.ErrInvalidCredentials) {
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Title": "Log in", "Form": echo, "Error": "Invalid username or password.",
		})
		return
	}
	if err != nil {
		logger.Error(ctx, "Login failed", "error", err)
		h.render(c, http.StatusInternalServerError, "login.html", gin.H{
			"Title": "Log in", "Form": echo, "Error": "Something went wrong. Please try again.",
		})
		return
	}

	token, err := h.codec.Encode(sess)
	if err != nil {
		logger.Error(ctx, "Session token signing failed", "error", err)
		_ = h.auth.Logout(ctx, sess.ID)
		h.fail(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if prev, ok := middleware.CurrentSession(c); ok {
		if err := h.auth.Logout(ctx, prev.ID); err != nil {
			logger.Warn(ctx, "Previous session cleanup failed", "error", err)
		}
	}
	middleware.SetSessionCookie(c, token, h.cookieMaxAge, h.secureCookie)
	h.redirect(c, "/")
}

// Logout ends the current session, if any, and redirects to the login page.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if sess, ok := middleware.CurrentSession(c); ok {
		if err := h.auth.Logout(ctx, sess.ID); err != nil {
			logger.Error(ctx, "Logout failed", "error", err)
		}
	}
	middleware.ClearSessionCookie(c, h.secureCookie)
	h.redirect(c, "/login")
}

// SignUpForm renders the registration page.
func (h *Handler) SignUpForm(c *gin.Context) {
	h.render(c, http.StatusOK, "sign_up.html", gin.H{"Title": "Sign up", "Form": signUpForm{}})
}

// SignUp registers an account and redirects to the login page.
func (h *Handler) SignUp(c *gin.Context) {
	ctx := c.Request.Context()
	var form signUpForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		logger.Debug(ctx, "Sign-up form bind failed", "error", err)
	}

	_, err := h.auth.Register(ctx, auth.SignUp{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err == nil {
		h.redirect(c, "/login")
		return
	}

	echo := signUpForm{Username: form.Username, Email: form.Email}
	status, message := http.StatusInternalServerError, "Something went wrong. Please try again."
	var verr *models.ValidationError
	var dup *models.DuplicateError
	switch {
	case errors.As(err, &verr):
		status, message = http.StatusBadRequest, verr.Message
	case errors.As(err, &dup):
		status, message = http.StatusConflict, duplicateMessage(dup.Field)
	default:
		logger.Error(ctx, "Registration failed", "error", err)
	}
	h.render(c, status, "sign_up.html", gin.H{"Title": "Sign up", "Form": echo, "Error": message})
}

func duplicateMessage(field string) string {
	switch field {
	case "username":
		return "That username is already taken."
	case "email":
		return "That email is already registered."
	default:
		return "That account already exists."
	}
}
