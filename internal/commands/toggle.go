package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdock/internal/config"
	"taskdock/internal/exitcode"
	"taskdock/internal/model"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command: flip a task between
// needsAction and completed.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Toggle a task's completion status" }
func (c *ToggleCmd) Usage() string     { return "taskdock toggle <list> <num>" }
func (c *ToggleCmd) NeedsAuth() bool   { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: list name and task number required")
		return exitcode.UserError
	}
	num, err := parseTaskNumber(args[1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if _, err := tree.LoadAll(ctx); err != nil {
		return failure(errOut, err)
	}
	list, task, err := resolveTask(tree, args[0], num)
	if err != nil {
		return failure(errOut, err)
	}

	status, err := tree.ToggleStatus(ctx, list.ID, task.ID)
	if err != nil {
		return failure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "%s\n", status)
	}
	return exitcode.Success
}
