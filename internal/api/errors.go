package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure classes the client reacts to. Everything
// else is treated as a transient failure.
var (
	// ErrUnauthenticated means the token is missing, expired, or rejected.
	// The caller must drop its local session and re-login.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound means the note does not exist or is not owned by the
	// current user, typically because it was deleted elsewhere.
	ErrNotFound = errors.New("note not found")

	// ErrValidation means the server rejected the request body.
	ErrValidation = errors.New("validation failed")
)

// StatusError carries an HTTP failure status with the response body, for
// statuses outside the mapped sentinel classes.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func statusToError(code int, body string) error {
	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, body)
	default:
		return &StatusError{Code: code, Body: body}
	}
}
