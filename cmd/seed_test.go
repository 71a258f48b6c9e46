package main

import (
	"testing"
	"time"

	"tasklist/internal/models"
	"tasklist/internal/tasks"
)

func TestSeedTodos(t *testing.T) {
	today := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	todos := seedTodos(7, 8, today)
	if len(todos) != 8 {
		t.Fatalf("len = %d; want 8", len(todos))
	}
	if got := todos[0].DueDate.Format(models.DateLayout); got != "2025-01-11" {
		t.Errorf("first due date = %s; want 2025-01-11", got)
	}
	if got := todos[7].DueDate.Format(models.DateLayout); got != "2025-01-18" {
		t.Errorf("last due date = %s; want 2025-01-18", got)
	}

	b := tasks.Classify(todos, today)
	if len(b.Completed) != 2 || len(b.Overdue) == 0 || len(b.Pending) == 0 {
		t.Errorf("buckets = %d pending, %d completed, %d overdue; want all non-empty with 2 completed",
			len(b.Pending), len(b.Completed), len(b.Overdue))
	}
	for _, td := range todos {
		if td.UserID != 7 {
			t.Errorf("UserID = %d; want 7", td.UserID)
		}
	}
}
