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
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print all list names" }
func (c *ListsCmd) Usage() string     { return "taskdock lists [common flags]" }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	lists, err := tree.LoadAll(ctx)
	if err != nil {
		return failure(errOut, err)
	}

	for _, list := range lists {
		output.FormatListName(out, list)
	}
	return exitcode.Success
}
