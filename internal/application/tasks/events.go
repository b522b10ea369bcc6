package tasks

import "time"

// TaskCreatedNotification is broadcast after a task creation commits.
// Delivery is best-effort: a failing listener never rolls back the write.
type TaskCreatedNotification struct {
	TaskID    string
	ProjectID string
	Name      string
	At        time.Time
}

// TaskCompletedNotification is broadcast after a task completion commits
type TaskCompletedNotification struct {
	TaskID    string
	ProjectID string
	At        time.Time
}
