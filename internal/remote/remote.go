// Package remote is the boundary to the Google Tasks service. Every
// call takes the credential that authorizes it explicitly;
// implementations report stale credentials as *auth.AuthorizationError
// so callers can tell them apart from any other failure.
package remote

import (
	"context"

	"taskdock/internal/auth"
)

// Task statuses as reported by the service.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task is one task record.
type Task struct {
	ID     string
	Title  string
	Status string
	Notes  string
	Due    string
}

// TaskList is one task list record.
type TaskList struct {
	ID    string
	Title string
}

// TaskData is the payload for task creation and full update. Updates
// send every field so a partially-filled payload never clears remote
// state by accident.
type TaskData struct {
	Title  string
	Status string
	Notes  string
	Due    string
}

// Client is the task service boundary consumed by the model.
type Client interface {
	// ListTaskLists returns all task lists in service order.
	ListTaskLists(ctx context.Context, cred *auth.Credential) ([]TaskList, error)

	// ListTasks returns a list's tasks, completed and hidden ones
	// included, in service order.
	ListTasks(ctx context.Context, cred *auth.Credential, tasklistID string) ([]Task, error)

	// GetTask fetches one task.
	GetTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID string) (Task, error)

	// CreateTask inserts a task and returns it with its assigned id.
	CreateTask(ctx context.Context, cred *auth.Credential, tasklistID string, data TaskData) (Task, error)

	// UpdateTask replaces a task's fields with data.
	UpdateTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID string, data TaskData) (Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID string) error

	// MoveTask positions a task directly after previousID within its
	// list. An empty previousID moves it to the front.
	MoveTask(ctx context.Context, cred *auth.Credential, tasklistID, taskID, previousID string) (Task, error)

	// CreateTaskList creates a task list and returns it with its
	// assigned id.
	CreateTaskList(ctx context.Context, cred *auth.Credential, title string) (TaskList, error)

	// UpdateTaskList renames a task list.
	UpdateTaskList(ctx context.Context, cred *auth.Credential, tasklistID, title string) (TaskList, error)

	// DeleteTaskList removes a task list and all its tasks.
	DeleteTaskList(ctx context.Context, cred *auth.Credential, tasklistID string) error
}
