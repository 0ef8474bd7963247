package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"taskdock/internal/auth"
	"taskdock/internal/config"
	"taskdock/internal/exitcode"
	"taskdock/internal/model"
	"taskdock/internal/remote"
)

// StoreFor returns the credential store selected by settings.
func StoreFor(cfg *config.Config, settings config.Settings) auth.Store {
	if settings.TokenStorage == config.StorageKeyring {
		return &auth.KeyringStore{}
	}
	return &auth.FileStore{Path: cfg.TokenPath()}
}

// NewManager builds the production credential manager for cfg.
func NewManager(cfg *config.Config, store auth.Store) *auth.Manager {
	clientPath := cfg.OAuthClientPath()
	return auth.NewManager(store,
		&auth.ConfigRefresher{ClientPath: clientPath},
		&auth.BrowserFlow{ClientPath: clientPath},
	)
}

// BuildTree wires the production engine stack for cfg.
func BuildTree(ctx context.Context, cfg *config.Config) (*model.Tree, error) {
	settings, err := cfg.LoadSettings()
	if err != nil {
		return nil, err
	}
	store := StoreFor(cfg, settings)
	exec := auth.NewExecutor(NewManager(cfg, store))
	return model.New(remote.NewGoogleClient(), exec), nil
}

// failure prints err and maps it to an exit code by taxonomy class.
func failure(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, auth.ErrAuthenticationExpired),
		errors.Is(err, auth.ErrConfigMissing),
		errors.Is(err, auth.ErrUserCancelled):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, model.ErrUnknownList),
		errors.Is(err, model.ErrUnknownTask),
		errors.Is(err, model.ErrAmbiguousList),
		errors.Is(err, remote.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// parseTaskNumber parses a 1-based task number argument.
func parseTaskNumber(arg string) (int, error) {
	num, err := strconv.Atoi(arg)
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid task number: %s", arg)
	}
	return num, nil
}

// resolveTask resolves a list title and 1-based task number against a
// loaded tree.
func resolveTask(tree *model.Tree, listName string, num int) (*model.List, *model.Task, error) {
	list, err := tree.FindListByTitle(listName)
	if err != nil {
		return nil, nil, err
	}
	if list.Failed() {
		return nil, nil, fmt.Errorf("tasks for list %q unavailable: %w", listName, list.LoadErr)
	}
	if num < 1 || num > len(list.Tasks) {
		return nil, nil, fmt.Errorf("%w: task number out of range: %d", model.ErrUnknownTask, num)
	}
	return list, list.Tasks[num-1], nil
}
