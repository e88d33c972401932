package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return []string{"count"} }
func (c *StatsCmd) Synopsis() string  { return "Count active tasks" }
func (c *StatsCmd) Usage() string     { return "todo stats" }
func (c *StatsCmd) NeedsAuth() bool   { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	active := a.Tasks.ActiveCount()
	total := len(a.Tasks.Tasks())
	output.FormatCount(out, active)
	if !cfg.Quiet {
		fmt.Fprintf(out, "%d completed\n%d total\n", total-active, total)
	}
	return exitcode.Success
}
