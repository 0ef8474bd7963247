package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskdock/internal/config"
	"taskdock/internal/exitcode"
	"taskdock/internal/model"
)

func init() {
	Register(&MvCmd{})
}

// MvCmd implements the mv command: reorder a task within its list.
type MvCmd struct{}

func (c *MvCmd) Name() string      { return "mv" }
func (c *MvCmd) Aliases() []string { return nil }
func (c *MvCmd) Synopsis() string  { return "Move a task to a new position in its list" }
func (c *MvCmd) Usage() string     { return "taskdock mv <list> <num> <newpos>" }
func (c *MvCmd) NeedsAuth() bool   { return true }

func (c *MvCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MvCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintln(errOut, "error: list name, task number and new position required")
		return exitcode.UserError
	}
	num, err := parseTaskNumber(args[1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	newPos, err := parseTaskNumber(args[2])
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

	// Optimistic local reorder, then push the resulting position.
	if err := tree.ReorderLocal(list.ID, task.ID, newPos-1); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := tree.MoveTask(ctx, list.ID, task.ID); err != nil {
		var stale *model.StaleError
		if errors.As(err, &stale) {
			// The optimistic order cannot be trusted: reload instead
			// of guessing a rollback.
			if _, lerr := tree.LoadAll(ctx); lerr != nil {
				fmt.Fprintf(errOut, "error: move failed and reload failed: %v\n", lerr)
				return exitcode.BackendError
			}
			fmt.Fprintf(errOut, "error: move failed, order restored from server: %v\n", stale.Err)
			return exitcode.BackendError
		}
		return failure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
