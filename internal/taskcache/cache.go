// Package taskcache keeps the signed-in user's tasks in memory and in sync
// with the remote API.
//
// The cache changes only after the server confirms a request: a failed
// call leaves every cached task exactly as it was. Network calls run
// without holding the cache lock, so two overlapping LoadAll calls both
// complete and the later one wins.
package taskcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"todo/internal/auth"
	"todo/internal/notify"
	"todo/internal/service"
	"todo/internal/validation"
	"todo/internal/view"
)

// ErrNotLoggedIn is returned by operations that need an active identity.
var ErrNotLoggedIn = fmt.Errorf("%w: not logged in", service.ErrAuth)

// IdentitySource reports the active identity.
type IdentitySource interface {
	Current() (auth.Identity, bool)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Renderer is told about every change to the cached collection.
type Renderer interface {
	Render(tasks []service.Task)
}

// Options configures a Cache. Nil fields get no-op defaults;
// a nil Confirmer declines every deletion.
type Options struct {
	Notifier  notify.Notifier
	Confirmer Confirmer
	Renderer  Renderer
	Log       *logrus.Entry
}

// Cache is the in-memory task collection of the active identity.
type Cache struct {
	svc      service.Service
	identity IdentitySource
	notifier notify.Notifier
	log      *logrus.Entry

	mu       sync.Mutex
	tasks    []service.Task
	renderer Renderer
	confirm  Confirmer
}

// New creates an empty cache.
func New(svc service.Service, identity IdentitySource, opts Options) *Cache {
	c := &Cache{
		svc:      svc,
		identity: identity,
		notifier: opts.Notifier,
		confirm:  opts.Confirmer,
		renderer: opts.Renderer,
		log:      opts.Log,
	}
	if c.notifier == nil {
		c.notifier = notify.Discard
	}
	if c.confirm == nil {
		c.confirm = ConfirmFunc(func(string) bool { return false })
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = logrus.NewEntry(l)
	}
	c.log = c.log.WithField("component", "taskcache")
	return c
}

// SetRenderer replaces the renderer. Nil disables rendering.
func (c *Cache) SetRenderer(r Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer = r
}

// SetConfirmer replaces the deletion confirmer. Nil declines every deletion.
func (c *Cache) SetConfirmer(cf Confirmer) {
	if cf == nil {
		cf = ConfirmFunc(func(string) bool { return false })
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirm = cf
}

// username returns the active user or reports ErrNotLoggedIn.
func (c *Cache) username() (string, error) {
	id, ok := c.identity.Current()
	if !ok {
		c.fail("", ErrNotLoggedIn)
		return "", ErrNotLoggedIn
	}
	return id.Username, nil
}

// LoadAll replaces the cache with the active user's tasks, in server order.
// On any failure the previous contents are kept.
func (c *Cache) LoadAll(ctx context.Context) error {
	username, err := c.username()
	if err != nil {
		return err
	}

	all, err := c.svc.ListTasks(ctx)
	if err != nil {
		c.fail("could not fetch tasks", err)
		return err
	}

	mine := make([]service.Task, 0, len(all))
	for _, t := range all {
		if t.Assignee == username {
			mine = append(mine, t)
		}
	}

	c.log.WithFields(logrus.Fields{"fetched": len(all), "kept": len(mine)}).Debug("tasks loaded")
	c.replace(mine)
	return nil
}

// Create validates d, creates the task remotely and prepends the server's
// record. Invalid drafts never reach the network.
func (c *Cache) Create(ctx context.Context, d service.Draft) (service.Task, error) {
	username, err := c.username()
	if err != nil {
		return service.Task{}, err
	}
	if err := validation.Draft(d); err != nil {
		c.fail("invalid task", err)
		return service.Task{}, err
	}

	priority := d.Priority
	if priority == "" {
		priority = service.DefaultPriority
	}
	created, err := c.svc.CreateTask(ctx, service.Task{
		Title:       d.Title,
		Description: d.Description,
		Completed:   false,
		Priority:    priority,
		Deadline:    d.Deadline,
		Category:    d.Category,
		Assignee:    username,
	})
	if err != nil {
		c.fail("could not add task", err)
		return service.Task{}, err
	}

	c.mu.Lock()
	c.tasks = append([]service.Task{created}, c.tasks...)
	c.mu.Unlock()
	c.render()

	notify.OK(c.notifier, "task added")
	return created, nil
}

// ToggleCompletion flips a task's completed flag once the server accepts
// the change. Unknown ids are ignored.
func (c *Cache) ToggleCompletion(ctx context.Context, id service.ID) error {
	task, ok := c.Find(id)
	if !ok {
		c.log.WithField("id", id).Debug("toggle ignored: task not cached")
		return nil
	}

	completed := !task.Completed
	if err := c.svc.PatchTask(ctx, id, service.Fields{Completed: &completed}); err != nil {
		c.fail("could not update task", err)
		return err
	}

	c.mu.Lock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Completed = completed
		}
	}
	c.mu.Unlock()
	c.render()

	if completed {
		notify.OK(c.notifier, "task completed")
	} else {
		notify.OK(c.notifier, "task reopened")
	}
	return nil
}

// Update sends a partial update and then reloads the whole collection so
// the cache reflects server-side state.
func (c *Cache) Update(ctx context.Context, id service.ID, fields service.Fields) error {
	if _, err := c.username(); err != nil {
		return err
	}
	if err := validation.Fields(fields); err != nil {
		c.fail("invalid update", err)
		return err
	}

	if err := c.svc.PatchTask(ctx, id, fields); err != nil {
		c.fail("could not save changes", err)
		return err
	}

	notify.OK(c.notifier, "changes saved")
	return c.LoadAll(ctx)
}

// Remove deletes a task after the user confirms.
// A declined confirmation makes no request.
func (c *Cache) Remove(ctx context.Context, id service.ID) error {
	if _, err := c.username(); err != nil {
		return err
	}

	prompt := fmt.Sprintf("Delete task %s?", id)
	if task, ok := c.Find(id); ok {
		prompt = fmt.Sprintf("Delete task %s (%s)?", id, strings.TrimSpace(task.Title))
	}
	c.mu.Lock()
	confirm := c.confirm
	c.mu.Unlock()
	if !confirm.Confirm(prompt) {
		c.log.WithField("id", id).Debug("delete declined")
		return nil
	}

	if err := c.svc.DeleteTask(ctx, id); err != nil {
		c.fail("could not delete task", err)
		return err
	}

	c.mu.Lock()
	kept := c.tasks[:0:0]
	for _, t := range c.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
	c.mu.Unlock()
	c.render()

	notify.Info(c.notifier, "task deleted")
	return nil
}

// Clear empties the cache without contacting the server.
func (c *Cache) Clear() {
	c.replace(nil)
}

// Tasks returns a copy of the cached tasks.
func (c *Cache) Tasks() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]service.Task(nil), c.tasks...)
}

// Find returns the cached task with the given id.
func (c *Cache) Find(id service.ID) (service.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// ActiveCount returns the number of cached tasks not yet completed.
func (c *Cache) ActiveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return view.CountActive(c.tasks)
}

func (c *Cache) replace(tasks []service.Task) {
	c.mu.Lock()
	c.tasks = tasks
	c.mu.Unlock()
	c.render()
}

// render hands a snapshot to the renderer outside the lock.
func (c *Cache) render() {
	c.mu.Lock()
	r := c.renderer
	snapshot := append([]service.Task(nil), c.tasks...)
	c.mu.Unlock()
	if r != nil {
		r.Render(snapshot)
	}
}

// fail logs err and reports it to the user.
func (c *Cache) fail(msg string, err error) {
	text := err.Error()
	if msg != "" {
		text = msg + ": " + text
	}
	entry := c.log.WithError(err)
	if errors.Is(err, service.ErrValidation) {
		entry.Debug(text)
	} else {
		entry.Warn(text)
	}
	notify.Fail(c.notifier, text)
}
