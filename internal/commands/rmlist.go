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
	Register(&RmListCmd{})
}

// RmListCmd implements the rmlist command.
type RmListCmd struct{}

func (c *RmListCmd) Name() string      { return "rmlist" }
func (c *RmListCmd) Aliases() []string { return nil }
func (c *RmListCmd) Synopsis() string  { return "Delete a task list and all its tasks" }
func (c *RmListCmd) Usage() string     { return "taskdock rmlist <name...>" }
func (c *RmListCmd) NeedsAuth() bool   { return true }

func (c *RmListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmListCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	if _, err := tree.LoadAll(ctx); err != nil {
		return failure(errOut, err)
	}
	list, err := tree.FindListByTitle(name)
	if err != nil {
		return failure(errOut, err)
	}

	if err := tree.DeleteList(ctx, list.ID); err != nil {
		return failure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
