package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskdock/internal/auth"
	"taskdock/internal/config"
	"taskdock/internal/exitcode"
	"taskdock/internal/model"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	// Manager overrides the credential manager (for testing).
	Manager *auth.Manager
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google" }
func (c *LoginCmd) Usage() string     { return "taskdock login [common flags]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, tree *model.Tree, args []string, out, errOut io.Writer) int {
	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.HasOAuthClient() {
		printOAuthClientHelp(errOut, cfg)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	store := StoreFor(cfg, settings)
	mgr := c.Manager
	if mgr == nil {
		mgr = NewManager(cfg, store)
	}

	// A stored valid credential means no flow is needed.
	if cred, err := store.Load(); err == nil && cred.Valid() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	if _, err := mgr.Acquire(ctx); err != nil {
		switch {
		case errors.Is(err, auth.ErrConfigMissing):
			printOAuthClientHelp(errOut, cfg)
		case errors.Is(err, auth.ErrUserCancelled):
			fmt.Fprintf(errOut, "error: %v\n", err)
		default:
			fmt.Fprintf(errOut, "error: login failed: %v\n", err)
		}
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// printOAuthClientHelp explains how to obtain oauth_client.json.
func printOAuthClientHelp(errOut io.Writer, cfg *config.Config) {
	fmt.Fprintf(errOut, "error: %s not found in %s\n\n", config.OAuthClientFile, cfg.Dir)
	fmt.Fprintln(errOut, "To authenticate with Google Tasks, you need OAuth credentials:")
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "1. Go to https://console.cloud.google.com/apis/credentials")
	fmt.Fprintln(errOut, "2. Create a project (or select an existing one)")
	fmt.Fprintln(errOut, "3. Enable the Google Tasks API:")
	fmt.Fprintln(errOut, "   https://console.cloud.google.com/apis/library/tasks.googleapis.com")
	fmt.Fprintln(errOut, "4. Create OAuth 2.0 credentials:")
	fmt.Fprintln(errOut, "   - Click 'Create Credentials' > 'OAuth client ID'")
	fmt.Fprintln(errOut, "   - Choose 'Desktop app' as application type")
	fmt.Fprintln(errOut, "   - Download the JSON file")
	fmt.Fprintln(errOut, "5. Save it as:")
	fmt.Fprintf(errOut, "   %s\n", cfg.OAuthClientPath())
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "Then run 'taskdock login' again.")
}
