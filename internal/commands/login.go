package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password optionalString
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in" }
func (c *LoginCmd) Usage() string     { return "todo login [--password p] <username>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = LoginCmd{}
	fs.Var(&c.password, "password", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) != 1 {
		return fail(errOut, fmt.Errorf("%w: expected one username", service.ErrValidation))
	}

	password := c.password.value
	if !c.password.set {
		p, err := prompt(lineReader(in), out, "password: ")
		if err != nil {
			return fail(errOut, err)
		}
		password = p
	}

	// A failed initial load still leaves the user logged in; the load
	// error has already been reported and only sets the exit code.
	if _, err := a.Login(ctx, args[0], password); err != nil {
		return exitcode.FromError(err)
	}
	return exitcode.Success
}
