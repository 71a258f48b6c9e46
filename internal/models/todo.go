package models

import "time"

// DateLayout is the wire format of due dates in forms and templates.
const DateLayout = "2006-01-02"

// Todo is a task owned by exactly one user.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	DueDate     time.Time `json:"due_date"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// DueDateString formats the due date as YYYY-MM-DD.
func (t Todo) DueDateString() string {
	return t.DueDate.Format(DateLayout)
}
