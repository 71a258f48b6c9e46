package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tasklist/internal/database/databasetest"
	"tasklist/internal/middleware"
	"tasklist/internal/models"
	"tasklist/internal/repository"
)

func TestDashboard_CancelledRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := databasetest.Open(t)
	h := New(Deps{DB: db, Users: repository.NewUsers(db), Todos: repository.NewTodos(db)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	middleware.SetSession(c, &models.Session{ID: "s1", UserID: 1, Username: "ada", ExpiresAt: time.Now().Add(time.Hour)})

	h.Dashboard(c)

	if rec.Code != statusClientClosedRequest {
		t.Errorf("status = %d; want %d", rec.Code, statusClientClosedRequest)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q; want empty", rec.Body.String())
	}
	if !c.IsAborted() {
		t.Error("context not aborted")
	}
}
