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
	Register(&EditCmd{})
}

// optionalString is a string flag that remembers whether it was given,
// so that "--category ''" clears a field while an absent flag leaves it.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

func (o *optionalString) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       optionalString
	description optionalString
	priority    optionalString
	deadline    optionalString
	category    optionalString
	assignee    optionalString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change task fields" }
func (c *EditCmd) Usage() string {
	return "todo edit [--title t] [--description d] [--priority p] [--deadline YYYY-MM-DD] [--category c] [--assignee u] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.priority, "p", "")
	fs.Var(&c.deadline, "deadline", "")
	fs.Var(&c.category, "category", "")
	fs.Var(&c.assignee, "assignee", "")
}

// fields builds the partial update from the flags that were given.
func (c *EditCmd) fields() service.Fields {
	f := service.Fields{
		Title:       c.title.ptr(),
		Description: c.description.ptr(),
		Deadline:    c.deadline.ptr(),
		Category:    c.category.ptr(),
		Assignee:    c.assignee.ptr(),
	}
	if c.priority.set {
		p := service.Priority(strings.ToLower(strings.TrimSpace(c.priority.value)))
		f.Priority = &p
	}
	if f.Deadline != nil {
		d := strings.TrimSpace(*f.Deadline)
		f.Deadline = &d
	}
	return f
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, in io.Reader, out, errOut io.Writer) int {
	id, err := cachedTaskID(a, args)
	if err != nil {
		return fail(errOut, err)
	}
	if err := a.Tasks.Update(ctx, id, c.fields()); err != nil {
		return exitcode.FromError(err)
	}
	return exitcode.Success
}
