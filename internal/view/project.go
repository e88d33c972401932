// Package view derives display records from cached tasks.
//
// Everything here is pure: the same input always yields the same output
// and the input slice is never modified.
package view

import (
	"fmt"
	"strings"

	"todo/internal/service"
)

// Filter selects tasks by completion status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a filter name. Empty means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	}
	return "", fmt.Errorf("%w: invalid filter: %s (want all, active or completed)", service.ErrValidation, s)
}

// TaskView is a display-ready task.
type TaskView struct {
	ID          service.ID
	Title       string
	Description string
	Completed   bool

	Priority      service.Priority
	PriorityLabel string
	PriorityColor string

	Assignee string
	Deadline string
	Category string

	ShowAssignee bool
	ShowDeadline bool
	ShowCategory bool
}

type priorityStyle struct {
	label string
	color string
}

var priorityStyles = map[service.Priority]priorityStyle{
	service.PriorityLow:    {"Low", "green"},
	service.PriorityMedium: {"Medium", "orange"},
	service.PriorityHigh:   {"High", "red"},
}

// Project filters tasks by status, then by a case-insensitive search term
// matched against title and description, and maps the survivors to
// TaskViews in their original order.
func Project(tasks []service.Task, filter Filter, term string) []TaskView {
	needle := strings.ToLower(term)

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		if !matchesFilter(t, filter) {
			continue
		}
		if needle != "" && !matchesTerm(t, needle) {
			continue
		}
		views = append(views, toView(t))
	}
	return views
}

func matchesFilter(t service.Task, f Filter) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	}
	return true
}

func matchesTerm(t service.Task, needle string) bool {
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

func toView(t service.Task) TaskView {
	prio := t.Priority
	style, ok := priorityStyles[prio]
	if !ok {
		prio = service.DefaultPriority
		style = priorityStyles[prio]
	}
	return TaskView{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Completed:     t.Completed,
		Priority:      prio,
		PriorityLabel: style.label,
		PriorityColor: style.color,
		Assignee:      t.Assignee,
		Deadline:      t.Deadline,
		Category:      t.Category,
		ShowAssignee:  t.Assignee != "",
		ShowDeadline:  t.Deadline != "",
		ShowCategory:  t.Category != "",
	}
}

// CountActive returns the number of tasks not yet completed.
func CountActive(tasks []service.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
