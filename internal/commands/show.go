package commands

import (
	"context"
	"flag"
	"io"

	"taskdock/internal/config"
	"taskdock/internal/exitcode"
	"taskdock/internal/model"
	"taskdock/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command: the whole task tree.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"ls"} }
func (c *ShowCmd) Synopsis() string  { return "Print all lists with their tasks" }
func (c *ShowCmd) Usage() string     { return "taskdock show [common flags]" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	lists, err := tree.LoadAll(ctx)
	if err != nil {
		return failure(errOut, err)
	}

	output.FormatTree(out, lists)
	return exitcode.Success
}
