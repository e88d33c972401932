package testutil

import (
	"sync"

	"todo/internal/auth"
	"todo/internal/notify"
	"todo/internal/service"
)

// Recorder collects notifications.
type Recorder struct {
	mu    sync.Mutex
	items []notify.Notification
}

// Notify implements notify.Notifier.
func (r *Recorder) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns the notifications received so far.
func (r *Recorder) All() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.items...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (notify.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return notify.Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Count returns how many notifications of the given severity arrived.
func (r *Recorder) Count(sev notify.Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.Severity == sev {
			n++
		}
	}
	return n
}

// RenderCounter counts renders and keeps the last snapshot.
type RenderCounter struct {
	mu    sync.Mutex
	Count int
	Last  []service.Task
}

// Render implements taskcache.Renderer.
func (r *RenderCounter) Render(tasks []service.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Count++
	r.Last = tasks
}

// StaticIdentity is a fixed identity source.
type StaticIdentity struct {
	Username string
}

// Current implements taskcache.IdentitySource. An empty username means
// nobody is logged in.
func (s StaticIdentity) Current() (auth.Identity, bool) {
	if s.Username == "" {
		return auth.Identity{}, false
	}
	return auth.Identity{Username: s.Username}, true
}
