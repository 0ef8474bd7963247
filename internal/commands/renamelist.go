package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdock/internal/config"
	"taskdock/internal/exitcode"
	"taskdock/internal/model"
)

func init() {
	Register(&RenameListCmd{})
}

// RenameListCmd implements the renamelist command.
type RenameListCmd struct{}

func (c *RenameListCmd) Name() string      { return "renamelist" }
func (c *RenameListCmd) Aliases() []string { return nil }
func (c *RenameListCmd) Synopsis() string  { return "Rename a task list" }
func (c *RenameListCmd) Usage() string     { return "taskdock renamelist <name> <newname...>" }
func (c *RenameListCmd) NeedsAuth() bool   { return true }

func (c *RenameListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameListCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: current and new list name required")
		return exitcode.UserError
	}
	name := args[0]
	newName := strings.TrimSpace(strings.Join(args[1:], " "))
	if newName == "" {
		fmt.Fprintln(errOut, "error: new list name required")
		return exitcode.UserError
	}

	if _, err := tree.LoadAll(ctx); err != nil {
		return failure(errOut, err)
	}
	list, err := tree.FindListByTitle(name)
	if err != nil {
		return failure(errOut, err)
	}

	if err := tree.RenameList(ctx, list.ID, newName); err != nil {
		return failure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
