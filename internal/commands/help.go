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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdock help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdock                                  Print all lists with their tasks
  taskdock show [common flags]              Print all lists with their tasks
  taskdock lists [common flags]             Print all list names
  taskdock add [common flags] <list> <title...>
  taskdock toggle [common flags] <list> <num>
  taskdock mv [common flags] <list> <num> <newpos>
  taskdock rm [common flags] <list> <num>
  taskdock addlist [common flags] <name...>
  taskdock renamelist [common flags] <name> <newname...>
  taskdock rmlist [common flags] <name...>
  taskdock login [common flags]
  taskdock logout [common flags]
  taskdock help
  taskdock version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
