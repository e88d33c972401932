// Package notify defines transient user-facing notifications.
package notify

// Severity classifies a notification.
type Severity int

const (
	// Neutral is informational (e.g. a deletion).
	Neutral Severity = iota
	// Success confirms a completed mutation.
	Success
	// Error reports a failed operation.
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "neutral"
	}
}

// Notification is a single transient message.
type Notification struct {
	Severity Severity
	Message  string
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to Notifier.
type Func func(n Notification)

// Notify implements Notifier.
func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// OK sends a success notification.
func OK(n Notifier, msg string) {
	n.Notify(Notification{Severity: Success, Message: msg})
}

// Info sends a neutral notification.
func Info(n Notifier, msg string) {
	n.Notify(Notification{Severity: Neutral, Message: msg})
}

// Fail sends an error notification.
func Fail(n Notifier, msg string) {
	n.Notify(Notification{Severity: Error, Message: msg})
}
