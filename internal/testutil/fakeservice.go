// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"todo/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = fmt.Errorf("%w: not found", service.ErrSync)

// ErrUnavailable is a convenient injected transport failure.
var ErrUnavailable = fmt.Errorf("%w: connection refused", service.ErrSync)

// FakeService is an in-memory implementation of service.Service for testing.
// Tasks are kept in server order; new tasks are appended and get sequential
// numeric ids.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	PatchTaskErr  error
	DeleteTaskErr error
	HealthErr     error

	// Calls counts requests per method name.
	calls map[string]int

	// Patches records every PatchTask request in order.
	Patches []Patch
}

// Patch is a recorded PatchTask request.
type Patch struct {
	ID     service.ID
	Fields service.Fields
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		calls:  make(map[string]int),
	}
}

// AddTask seeds a task as if it already existed on the server.
// An empty ID is assigned the next sequential id.
func (f *FakeService) AddTask(task service.Task) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.ID == "" {
		task.ID = service.ID(strconv.Itoa(f.nextID))
		f.nextID++
	}
	f.tasks = append(f.tasks, task)
	return task
}

// Get returns the server-side copy of a task.
func (f *FakeService) Get(id service.ID) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Calls returns how many times method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[method]
}

// TotalCalls returns the number of requests of any kind.
func (f *FakeService) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *FakeService) count(method string) {
	f.calls[method]++
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.Task) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	task.ID = service.ID(strconv.Itoa(f.nextID))
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task, nil
}

// PatchTask implements service.Service.
func (f *FakeService) PatchTask(ctx context.Context, id service.ID, fields service.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("PatchTask")
	f.Patches = append(f.Patches, Patch{ID: id, Fields: fields})
	if f.PatchTaskErr != nil {
		return f.PatchTaskErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		t := &f.tasks[i]
		if fields.Title != nil {
			t.Title = *fields.Title
		}
		if fields.Description != nil {
			t.Description = *fields.Description
		}
		if fields.Completed != nil {
			t.Completed = *fields.Completed
		}
		if fields.Priority != nil {
			t.Priority = *fields.Priority
		}
		if fields.Deadline != nil {
			t.Deadline = *fields.Deadline
		}
		if fields.Category != nil {
			t.Category = *fields.Category
		}
		if fields.Assignee != nil {
			t.Assignee = *fields.Assignee
		}
		return nil
	}
	return ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Health implements service.Service.
func (f *FakeService) Health(ctx context.Context) (service.Health, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Health")
	if f.HealthErr != nil {
		return service.Health{}, f.HealthErr
	}
	return service.Health{Status: "OK", Timestamp: "2024-01-01T00:00:00"}, nil
}
