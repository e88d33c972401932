package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/taskcache"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todo rm [--yes] <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	id, err := cachedTaskID(a, args)
	if err != nil {
		return fail(errOut, err)
	}

	if c.yes {
		a.Tasks.SetConfirmer(taskcache.ConfirmFunc(func(string) bool { return true }))
	} else {
		a.Tasks.SetConfirmer(promptConfirmer{in: lineReader(in), out: out})
	}

	if err := a.Tasks.Remove(ctx, id); err != nil {
		return exitcode.FromError(err)
	}
	if _, still := a.Tasks.Find(id); still && !cfg.Quiet {
		fmt.Fprintln(out, "cancelled")
	}
	return exitcode.Success
}
