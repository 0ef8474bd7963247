package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"taskdock/internal/auth"
)

// ErrNotFound reports a missing task list or task.
var ErrNotFound = errors.New("not found")

// wrapError translates Google API failures into the taxonomy the
// rest of the engine dispatches on. It keys off the structured
// googleapi error, not message text.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &auth.AuthorizationError{Status: gerr.Code, Err: err}
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	return err
}
