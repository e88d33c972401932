package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	priority    string
	deadline    string
	category    string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "todo add [--description d] [--priority low|medium|high] [--deadline YYYY-MM-DD] [--category c] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.deadline, "deadline", "", "")
	fs.StringVar(&c.category, "category", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	// Validation happens in the cache so that an empty title never
	// reaches the server; failures are reported through the notifier.
	_, err := a.Tasks.Create(ctx, service.Draft{
		Title:       strings.Join(args, " "),
		Description: c.description,
		Priority:    service.Priority(strings.ToLower(strings.TrimSpace(c.priority))),
		Deadline:    strings.TrimSpace(c.deadline),
		Category:    c.category,
	})
	if err != nil {
		return exitcode.FromError(err)
	}
	return exitcode.Success
}
