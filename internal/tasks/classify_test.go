package tasks

import (
	"testing"
	"time"

	"tasklist/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBucketOf(t *testing.T) {
	now := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		todo models.Todo
		want Bucket
	}{
		{"completed long ago", models.Todo{Completed: true, DueDate: day("1999-01-01")}, Completed},
		{"completed in future", models.Todo{Completed: true, DueDate: day("2030-01-01")}, Completed},
		{"due today", models.Todo{DueDate: day("2025-01-15")}, Pending},
		{"due tomorrow", models.Todo{DueDate: day("2025-01-16")}, Pending},
		{"due yesterday", models.Todo{DueDate: day("2025-01-14")}, Overdue},
		{"due last year", models.Todo{DueDate: day("2024-01-15")}, Overdue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BucketOf(tt.todo, now); got != tt.want {
				t.Errorf("BucketOf() = %s; want %s", got, tt.want)
			}
		})
	}
}

func TestBucketOf_DueAtMidnightIsPendingAllDay(t *testing.T) {
	todo := models.Todo{DueDate: day("2025-01-15")}
	for _, now := range []time.Time{
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC),
	} {
		if got := BucketOf(todo, now); got != Pending {
			t.Errorf("BucketOf(now=%v) = %s; want pending", now, got)
		}
	}
}

func TestClassify_PartitionIsTotalAndDisjoint(t *testing.T) {
	now := day("2025-06-01")
	var input []models.Todo
	id := int64(0)
	for _, due := range []string{"2025-05-01", "2025-06-01", "2025-07-01"} {
		for _, done := range []bool{false, true} {
			id++
			input = append(input, models.Todo{ID: id, Completed: done, DueDate: day(due)})
		}
	}

	b := Classify(input, now)
	if b.Total() != len(input) {
		t.Fatalf("Total() = %d; want %d", b.Total(), len(input))
	}

	seen := make(map[int64]int)
	for _, bucket := range [][]models.Todo{b.Pending, b.Completed, b.Overdue} {
		for _, td := range bucket {
			seen[td.ID]++
		}
	}
	for _, td := range input {
		if seen[td.ID] != 1 {
			t.Errorf("todo %d appears in %d buckets; want 1", td.ID, seen[td.ID])
		}
	}

	if len(b.Completed) != 3 || len(b.Pending) != 2 || len(b.Overdue) != 1 {
		t.Errorf("sizes pending=%d completed=%d overdue=%d; want 2/3/1",
			len(b.Pending), len(b.Completed), len(b.Overdue))
	}
}

func TestClassify_Empty(t *testing.T) {
	b := Classify(nil, time.Now())
	if b.Total() != 0 {
		t.Errorf("Total() = %d; want 0", b.Total())
	}
}
