package auth

import (
	"context"
	"fmt"
)

// Operation is one remote call parameterized by the credential that
// authorizes it.
type Operation func(ctx context.Context, cred *Credential) error

// Executor runs operations with a credential from the manager and
// retries exactly once after a forced refresh when the service
// rejects the credential. A second rejection is terminal
// (ErrAuthenticationExpired); any other failure surfaces immediately
// without retry.
type Executor struct {
	manager *Manager
}

// NewExecutor creates an executor backed by the manager.
func NewExecutor(m *Manager) *Executor {
	return &Executor{manager: m}
}

// Do runs op with a usable credential, applying the one-shot
// refresh-and-retry policy.
func (e *Executor) Do(ctx context.Context, op Operation) error {
	cred, err := e.manager.Acquire(ctx)
	if err != nil {
		return err
	}

	err = op(ctx, cred)
	if err == nil || !IsAuthorization(err) {
		return err
	}

	// Surface acquisition failures (ConfigMissing, UserCancelled)
	// with their own identity rather than folding them into the
	// expired case.
	cred, rerr := e.manager.ForceRefresh(ctx)
	if rerr != nil {
		return rerr
	}

	err = op(ctx, cred)
	if err != nil && IsAuthorization(err) {
		return fmt.Errorf("%w: %v", ErrAuthenticationExpired, err)
	}
	return err
}
