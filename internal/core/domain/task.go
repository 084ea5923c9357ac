package domain

import "time"

// Task statuses and priorities as stored.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task is an action item owned by a user, optionally linked to a client.
// ClientName is only set on reads that join the clients table.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	ClientID    *int64
	ClientName  *string
	UserID      int64
}
