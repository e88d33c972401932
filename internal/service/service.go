// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task API.
// The task cache talks to the backend only through this interface;
// commands never issue HTTP requests directly.
type Service interface {
	// ListTasks returns every task the server holds, in server order.
	// Returns an error wrapping ErrMalformedResponse if the payload
	// is not a JSON array of tasks.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns the server's record,
	// including the server-assigned ID.
	CreateTask(ctx context.Context, task Task) (Task, error)

	// PatchTask sends a partial update for a task.
	PatchTask(ctx context.Context, id ID, fields Fields) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id ID) error

	// Health reports the server's health endpoint.
	Health(ctx context.Context) (Health, error)
}
