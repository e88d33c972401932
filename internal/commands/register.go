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
	"todo/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	email    string
	password optionalString
	confirm  optionalString
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "todo register [--email e] [--password p] [--confirm p] <username>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = RegisterCmd{}
	fs.StringVar(&c.email, "email", "", "")
	fs.Var(&c.password, "password", "")
	fs.Var(&c.confirm, "confirm", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) != 1 {
		return fail(errOut, fmt.Errorf("%w: expected one username", service.ErrValidation))
	}

	r := lineReader(in)
	password := c.password.value
	if !c.password.set {
		p, err := prompt(r, out, "password: ")
		if err != nil {
			return fail(errOut, err)
		}
		password = p
	}
	confirm := c.confirm.value
	if !c.confirm.set {
		p, err := prompt(r, out, "confirm password: ")
		if err != nil {
			return fail(errOut, err)
		}
		confirm = p
	}

	if _, err := a.Register(args[0], strings.TrimSpace(c.email), password, confirm); err != nil {
		return exitcode.FromError(err)
	}
	return exitcode.Success
}
