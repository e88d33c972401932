// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/view"
)

const (
	// ListSeparator is the separator line between the task list and its footer.
	ListSeparator = "------------"

	// detailIndent aligns detail lines under the task title.
	detailIndent = "          "
)

// FormatTask formats one task.
// Format: "{ID:>4}  [x] {TITLE}  ({PRIORITY})\n", followed by an indented
// description line and an indented detail line when present.
func FormatTask(w io.Writer, v view.TaskView) {
	mark := "[ ]"
	if v.Completed {
		mark = "[x]"
	}
	fmt.Fprintf(w, "%4s  %s %s  (%s)\n", v.ID, mark, normalizeTitle(v.Title), v.PriorityLabel)

	if desc := normalizeText(v.Description); desc != "" {
		fmt.Fprintf(w, "%s%s\n", detailIndent, desc)
	}

	var details []string
	if v.ShowDeadline {
		details = append(details, "due "+v.Deadline)
	}
	if v.ShowCategory {
		details = append(details, "#"+normalizeText(v.Category))
	}
	if v.ShowAssignee {
		details = append(details, "@"+v.Assignee)
	}
	if len(details) > 0 {
		fmt.Fprintf(w, "%s%s\n", detailIndent, strings.Join(details, "  "))
	}
}

// FormatTasks writes every view, or a placeholder line when there are none.
func FormatTasks(w io.Writer, views []view.TaskView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "no tasks found")
		return
	}
	for _, v := range views {
		FormatTask(w, v)
	}
}

// FormatCount writes the active task counter.
func FormatCount(w io.Writer, active int) {
	fmt.Fprintf(w, "%d active\n", active)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText flattens newlines and trims surrounding space.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
