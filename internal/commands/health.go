package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&HealthCmd{})
}

// HealthCmd implements the health command.
type HealthCmd struct{}

func (c *HealthCmd) Name() string      { return "health" }
func (c *HealthCmd) Aliases() []string { return []string{"ping"} }
func (c *HealthCmd) Synopsis() string  { return "Check the task server" }
func (c *HealthCmd) Usage() string     { return "todo health" }
func (c *HealthCmd) NeedsAuth() bool   { return false }

func (c *HealthCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HealthCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	h, err := a.Service.Health(ctx)
	if err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintf(out, "%s %s\n", h.Status, cfg.APIURL)
	if h.Timestamp != "" && !cfg.Quiet {
		fmt.Fprintf(out, "server time: %s\n", h.Timestamp)
	}
	return exitcode.Success
}
