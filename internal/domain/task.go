package domain

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a standalone task, distinct from a project's embedded sub-tasks.
type Task struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id,omitempty"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description,omitempty"`
	DueDate     string    `db:"due_date" json:"dueDate,omitempty"`
	Labels      []string  `db:"labels" json:"labels"`
	Priority    string    `db:"priority" json:"priority"`
	Done        bool      `db:"done" json:"done"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TaskPatch carries a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Labels      *[]string `json:"labels,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	Done        *bool     `json:"done,omitempty"`
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
