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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add a task to a list" }
func (c *AddCmd) Usage() string     { return "taskdock add <list> <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: list name and task title required")
		return exitcode.UserError
	}
	listName := args[0]
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: task title required")
		return exitcode.UserError
	}

	if _, err := tree.LoadAll(ctx); err != nil {
		return failure(errOut, err)
	}
	list, err := tree.FindListByTitle(listName)
	if err != nil {
		return failure(errOut, err)
	}

	if _, err := tree.CreateTask(ctx, list.ID, title); err != nil {
		return failure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
