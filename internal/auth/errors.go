package auth

import (
	"errors"
	"fmt"
)

// AuthorizationError marks a remote call rejected because the
// credential it carried is stale or revoked. The executor recovers
// from it once via a forced refresh; the remote client constructs it
// from the service's 401/403 responses.
type AuthorizationError struct {
	Status int // HTTP status reported by the service, if any
	Err    error
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization rejected (status %d): %v", e.Status, e.Err)
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// IsAuthorization reports whether err is an authorization rejection.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

// ErrAuthenticationExpired is returned by the executor when an
// operation is rejected again after a forced refresh. The session
// needs an interactive re-login.
var ErrAuthenticationExpired = errors.New("authentication expired, login required")

// ErrConfigMissing indicates the OAuth client configuration file is
// absent. Fatal to any authentication attempt.
var ErrConfigMissing = errors.New("oauth client configuration not found")

// ErrUserCancelled indicates the user abandoned the interactive
// authentication flow.
var ErrUserCancelled = errors.New("authentication cancelled")

// ErrNoCredential indicates no credential is persisted.
var ErrNoCredential = errors.New("no stored credential")

// CorruptError wraps a parse failure of persisted credential
// material. The manager clears the blob and treats it as absent.
type CorruptError struct {
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("stored credential unreadable: %v", e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }
