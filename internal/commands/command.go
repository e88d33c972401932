// Package commands provides the command interface and implementations.
package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a logged-in user.
	// The dispatcher restores the session and loads the task cache
	// before running such commands.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, settings).
	// a is nil for Standalone commands.
	// args contains positional arguments after flag parsing.
	// in supplies passwords and confirmations.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int
}

// Standalone is implemented by commands that need no application state,
// such as help and version.
type Standalone interface {
	Standalone()
}

// errTaskNotFound is reported when an id names no cached task.
var errTaskNotFound = fmt.Errorf("%w: task not found", service.ErrValidation)

// fail prints err and maps it to an exit code.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.FromError(err)
}

// cachedTaskID parses a task id argument and checks that the task is cached.
func cachedTaskID(a *app.App, args []string) (service.ID, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: task id required", service.ErrValidation)
	}
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one task id, got %d", service.ErrValidation, len(args))
	}
	id, err := service.ParseID(args[0])
	if err != nil {
		return "", err
	}
	if _, ok := a.Tasks.Find(id); !ok {
		return "", fmt.Errorf("%w: %s", errTaskNotFound, id)
	}
	return id, nil
}

// lineReader returns in as a *bufio.Reader, wrapping it only when needed so
// that successive prompts share one buffer.
func lineReader(in io.Reader) *bufio.Reader {
	if br, ok := in.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(in)
}

// readLine reads one line without its line ending. A final line without a
// newline is returned with a nil error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// prompt writes label to out and reads the answer from in.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	answer, err := readLine(in)
	if err != nil {
		fmt.Fprintln(out)
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: no input for %q", service.ErrValidation, strings.TrimSpace(strings.TrimSuffix(label, ": ")))
		}
		return "", err
	}
	return answer, nil
}

// promptConfirmer asks yes/no questions on the terminal.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// Confirm implements taskcache.Confirmer. Only "y" or "yes" confirm.
func (p promptConfirmer) Confirm(question string) bool {
	answer, err := prompt(p.in, p.out, question+" [y/N] ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
