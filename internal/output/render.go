package output

import (
	"fmt"
	"io"
	"sync"

	"todo/internal/notify"
	"todo/internal/service"
	"todo/internal/view"
)

// Renderer writes the projected task list followed by the active counter.
// Filter and search term persist between renders, like the filter
// controls of an interactive screen.
type Renderer struct {
	w io.Writer

	mu     sync.Mutex
	filter view.Filter
	term   string
}

// NewRenderer creates a renderer showing all tasks.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, filter: view.FilterAll}
}

// SetFilter changes the status filter used by later renders.
func (r *Renderer) SetFilter(f view.Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = f
}

// SetTerm changes the search term used by later renders.
func (r *Renderer) SetTerm(term string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.term = term
}

// Render implements taskcache.Renderer.
func (r *Renderer) Render(tasks []service.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	FormatTasks(r.w, view.Project(tasks, r.filter, r.term))
	fmt.Fprintln(r.w, ListSeparator)
	FormatCount(r.w, view.CountActive(tasks))
}

// Notifier prints notifications: success and neutral messages to out
// (suppressed when quiet), errors as "error: ..." to errOut.
type Notifier struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

// NewNotifier creates a Notifier.
func NewNotifier(out, errOut io.Writer, quiet bool) *Notifier {
	return &Notifier{out: out, errOut: errOut, quiet: quiet}
}

// Notify implements notify.Notifier.
func (n *Notifier) Notify(note notify.Notification) {
	switch note.Severity {
	case notify.Error:
		fmt.Fprintf(n.errOut, "error: %s\n", note.Message)
	default:
		if !n.quiet {
			fmt.Fprintln(n.out, note.Message)
		}
	}
}
