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
	"todo/internal/output"
	"todo/internal/view"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements the shell command: a read-eval loop that keeps one
// task cache alive and re-renders it after every change.
type ShellCmd struct {
	registry *Registry
}

// NewShellCmd creates a shell dispatching to the given registry.
func NewShellCmd(r *Registry) *ShellCmd {
	return &ShellCmd{registry: r}
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return []string{"repl"} }
func (c *ShellCmd) Synopsis() string  { return "Interactive session" }
func (c *ShellCmd) Usage() string     { return "todo shell" }
func (c *ShellCmd) NeedsAuth() bool   { return false }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	reg := c.registry
	if reg == nil {
		reg = DefaultRegistry
	}

	r := lineReader(in)
	renderer := output.NewRenderer(out)
	a.Tasks.SetRenderer(renderer)
	defer a.Tasks.SetRenderer(nil)

	if _, ok := a.Session.Current(); ok {
		renderer.Render(a.Tasks.Tasks())
	} else if ok, _ := a.Restore(ctx); !ok && !cfg.Quiet {
		fmt.Fprintln(out, "not logged in (use: login <username>)")
	}

	for {
		if ctx.Err() != nil {
			return exitcode.Success
		}
		if !cfg.Quiet {
			fmt.Fprint(out, "todo> ")
		}
		line, err := readLine(r)
		if errors.Is(err, io.EOF) {
			if !cfg.Quiet {
				fmt.Fprintln(out)
			}
			return exitcode.Success
		}
		if err != nil {
			return fail(errOut, err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name, rest := fields[0], fields[1:]

		switch name {
		case "quit", "exit":
			return exitcode.Success
		case "filter":
			f, err := view.ParseFilter(strings.Join(rest, " "))
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			renderer.SetFilter(f)
			renderer.Render(a.Tasks.Tasks())
		case "search":
			renderer.SetTerm(argText(line, name))
			renderer.Render(a.Tasks.Tasks())
		case "reload":
			_ = a.Tasks.LoadAll(ctx)
		case c.Name():
			fmt.Fprintln(errOut, "error: already in shell")
		default:
			c.runLine(ctx, reg, cfg, a, name, rest, r, out, errOut)
		}
	}
}

// argText returns the raw text after the command word, keeping inner
// spacing intact.
func argText(line, name string) string {
	rest := strings.TrimPrefix(strings.TrimLeft(line, " \t"), name)
	return strings.TrimSpace(rest)
}

// runLine runs one registered command inside the shell. Errors have
// already been reported by the time it returns.
func (c *ShellCmd) runLine(ctx context.Context, reg *Registry, cfg *config.Config, a *app.App, name string, args []string, in *bufio.Reader, out, errOut io.Writer) {
	cmd, ok := reg.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return
	}
	if cmd.NeedsAuth() {
		if _, ok := a.Session.Current(); !ok {
			fmt.Fprintln(errOut, "error: not logged in (use: login <username>)")
			return
		}
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return
	}
	cmd.Run(ctx, cfg, a, fs.Args(), in, out, errOut)
}
