package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasklist/internal/controller"
	"tasklist/internal/middleware"
	"tasklist/internal/session"
	"tasklist/internal/web"
)

// Router wires every route of the application onto a new gin engine.
func Router(h *controller.Handler, resolver middleware.SessionResolver, codec *session.Codec, secureCookie bool) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(web.Static()))

	// Health for load balancers and K8s probes
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	pages := router.Group("")
	pages.Use(middleware.LoadSession(resolver, codec, secureCookie))
	{
		pages.GET("/login", h.LoginForm)
		pages.POST("/token", h.Token)
		pages.GET("/logout", h.Logout)
		pages.GET("/sign_up", h.SignUpForm)
		pages.POST("/sign_up", h.SignUp)
		pages.GET("/", h.Dashboard)
	}

	// Session required
	authed := pages.Group("")
	authed.Use(middleware.RequireSession())
	{
		authed.GET("/new_task", h.NewTaskForm)
		authed.POST("/new_task", h.NewTask)
		authed.POST("/complete_task/:id", h.CompleteTask)
		authed.POST("/delete_task/:id", h.DeleteTask)
		authed.GET("/profile/:user_id", h.Profile)
	}

	return router, nil
}
