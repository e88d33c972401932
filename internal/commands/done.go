package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It flips completion, so running
// it on a completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "todo done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	id, err := cachedTaskID(a, args)
	if err != nil {
		return fail(errOut, err)
	}
	if err := a.Tasks.ToggleCompletion(ctx, id); err != nil {
		return exitcode.FromError(err)
	}
	return exitcode.Success
}
