package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"tasklist/internal/auth"
	"tasklist/internal/controller"
	"tasklist/internal/repository"
	"tasklist/internal/routes"
	"tasklist/internal/session"
	"tasklist/pkg/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := session.NewStore(ctx, cfg, db)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}
	logger.Info(ctx, "Session store ready", "backend", cfg.SessionBackend)

	users := repository.NewUsers(db)
	authService := auth.NewService(users, store, cfg.SessionMaxAge(), cfg.BcryptCost)
	codec := session.NewCodec(cfg.SessionSecret)
	h := controller.New(controller.Deps{
		DB:           db,
		Auth:         authService,
		Users:        users,
		Todos:        repository.NewTodos(db),
		Sessions:     store,
		Codec:        codec,
		CookieMaxAge: cfg.SessionTTL,
		SecureCookie: cfg.CookieSecure,
	})

	gin.SetMode(gin.ReleaseMode)
	router, err := routes.Router(h, authService, codec, cfg.CookieSecure)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	quit, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen on :%s: %w", cfg.HTTPPort, err)
		}
		return nil
	case <-quit.Done():
	}

	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}
