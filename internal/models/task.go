package models

import "time"

// TaskPriority orders tasks in list views.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// TaskStatus is a one-way transition: active -> completed. There is no reopen.
type TaskStatus string

const (
	TaskActive    TaskStatus = "active"
	TaskCompleted TaskStatus = "completed"
)

// Task is a to-do item owned by a single user.
type Task struct {
	ID     int64
	UserID int64

	Title string

	// Description is optional; empty means none.
	Description string

	// DueDate is a calendar date in YYYY-MM-DD form; empty means no deadline.
	DueDate string

	Priority TaskPriority
	Status   TaskStatus

	CreatedAt time.Time

	// CompletedAt is set exactly once, when the task is completed.
	CompletedAt *time.Time
}
