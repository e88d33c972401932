// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"todo/internal/service"
)

// Exit codes.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid input, bad config).
	UserError = 1

	// AuthError indicates an auth error (not logged in, bad credentials).
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// FromError maps an error to its exit code. Unclassified errors are
// treated as backend errors.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, service.ErrValidation):
		return UserError
	case errors.Is(err, service.ErrAuth):
		return AuthError
	default:
		return BackendError
	}
}
