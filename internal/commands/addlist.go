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
	Register(&AddListCmd{})
}

// AddListCmd implements the addlist command.
type AddListCmd struct{}

func (c *AddListCmd) Name() string      { return "addlist" }
func (c *AddListCmd) Aliases() []string { return nil }
func (c *AddListCmd) Synopsis() string  { return "Create a new task list" }
func (c *AddListCmd) Usage() string     { return "taskdock addlist <name...>" }
func (c *AddListCmd) NeedsAuth() bool   { return true }

func (c *AddListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddListCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	if _, err := tree.CreateList(ctx, name); err != nil {
		return failure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
