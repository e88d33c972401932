package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID is a task identifier in canonical form.
// Numeric identifiers are stored as their base-10 integer text, so an ID
// received as the JSON number 7 and one typed on the command line as "7"
// compare equal with ==.
type ID string

// ParseID normalizes a user-supplied identifier.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: task id required", ErrValidation)
	}
	return canonicalID(s), nil
}

// canonicalID folds integral numeric text ("7", "07", "7.0") to "7".
// Anything else is kept verbatim.
func canonicalID(s string) ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID(strconv.FormatInt(n, 10))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return ID(strconv.FormatInt(int64(f), 10))
	}
	return ID(s)
}

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = canonicalID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id %s", data)
	}
	*id = canonicalID(n.String())
	return nil
}

// MarshalJSON writes numeric IDs as JSON numbers and others as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when a task has no priority set.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single task record as served by the remote API.
type Task struct {
	ID          ID       `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	Deadline    string   `json:"deadline"`
	Category    string   `json:"category"`
	Assignee    string   `json:"assignee"`

	// Server-maintained timestamps; read-only on the client.
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Draft holds the user-supplied fields of a task that does not exist yet.
type Draft struct {
	Title       string   `validate:"notblank,max=200"`
	Description string
	Priority    Priority `validate:"omitempty,oneof=low medium high"`
	Deadline    string   `validate:"omitempty,datetime=2006-01-02"`
	Category    string   `validate:"max=100"`
}

// Fields is a partial task update. Nil fields are not sent.
type Fields struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Deadline    *string   `json:"deadline,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Assignee    *string   `json:"assignee,omitempty"`
}

// Empty reports whether no field is set.
func (f Fields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Completed == nil &&
		f.Priority == nil && f.Deadline == nil && f.Category == nil && f.Assignee == nil
}

// Health is the server's health report.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
