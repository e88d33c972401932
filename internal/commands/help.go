package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }
func (c *HelpCmd) Standalone()       {}

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range DefaultRegistry.All() {
		line := fmt.Sprintf("  %-10s %s", cmd.Name(), cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintln(out, line)
	}
	return exitcode.Success
}

const helpText = `Usage:
  todo                                   List all tasks
  todo list [common flags] [--filter all|active|completed] [search...]
  todo add [common flags] [--description d] [--priority p] [--deadline YYYY-MM-DD] [--category c] <title...>
  todo done [common flags] <id>          Toggle completion
  todo edit [common flags] [--title t] [--description d] [--priority p] [--deadline d] [--category c] [--assignee u] <id>
  todo rm [common flags] [--yes] <id>
  todo stats [common flags]
  todo register [common flags] [--email e] [--password p] [--confirm p] <username>
  todo login [common flags] [--password p] <username>
  todo logout [common flags]
  todo whoami [common flags]
  todo health [common flags]
  todo shell [common flags]
  todo help
  todo version

Common flags:
  --config <dir>   Override config directory
  --api-url <url>  Override the task API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
