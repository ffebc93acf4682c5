package models

import "time"

// TodoType distinguishes calculator plans from user-authored tasks
type TodoType string

const (
	TodoPlan   TodoType = "plan"
	TodoCustom TodoType = "custom"
)

// Todo is one user_todos row. A plan row holds a whole checklist,
// a custom row holds a single task.
type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Type      TodoType  `json:"type"`
	Text      []string  `json:"text"`
	Completed []bool    `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoItem is a single checklist entry as shown to the user
type TodoItem struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Type      TodoType `json:"type"`
}
