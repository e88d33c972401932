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
	Register(&WhoamiCmd{})
}

// WhoamiCmd implements the whoami command. It reads the stored session
// without contacting the server.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "todo whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	id, ok := a.Session.Current()
	if !ok {
		var err error
		id, ok, err = a.Session.Restore()
		if err != nil {
			return fail(errOut, err)
		}
	}
	if !ok {
		return fail(errOut, taskcache.ErrNotLoggedIn)
	}

	if id.Email != "" {
		fmt.Fprintf(out, "%s <%s>\n", id.Username, id.Email)
	} else {
		fmt.Fprintln(out, id.Username)
	}
	return exitcode.Success
}
