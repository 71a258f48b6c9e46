// Package tasks buckets todos into pending, completed and overdue and
// aggregates the bucket sizes for the profile page.
package tasks

import (
	"time"

	"tasklist/internal/models"
)

// Bucket names a classification bucket.
type Bucket string

const (
	Pending   Bucket = "pending"
	Completed Bucket = "completed"
	Overdue   Bucket = "overdue"
)

// Buckets is the partition of a todo list. Every todo is in exactly one slice.
type Buckets struct {
	Pending   []models.Todo
	Completed []models.Todo
	Overdue   []models.Todo
}

// Total returns the number of classified todos.
func (b Buckets) Total() int {
	return len(b.Pending) + len(b.Completed) + len(b.Overdue)
}

// BucketOf classifies a single todo at now. Due dates are compared by calendar
// day, so a task due today is still pending.
func BucketOf(t models.Todo, now time.Time) Bucket {
	if t.Completed {
		return Completed
	}
	if civilDate(t.DueDate).Before(civilDate(now)) {
		return Overdue
	}
	return Pending
}

// Classify partitions todos at now, preserving input order inside each bucket.
func Classify(todos []models.Todo, now time.Time) Buckets {
	var b Buckets
	for _, t := range todos {
		switch BucketOf(t, now) {
		case Completed:
			b.Completed = append(b.Completed, t)
		case Overdue:
			b.Overdue = append(b.Overdue, t)
		default:
			b.Pending = append(b.Pending, t)
		}
	}
	return b
}

// civilDate drops the time of day and zone, keeping the date as seen in t's location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
