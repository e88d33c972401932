package service

import "errors"

// Error classes. Concrete errors wrap one of these with %w so callers
// can classify them with errors.Is.
var (
	// ErrValidation is a client-side failure detected before any network call.
	ErrValidation = errors.New("validation error")

	// ErrAuth covers registration and login failures.
	ErrAuth = errors.New("auth error")

	// ErrSync is a transport failure or non-2xx response on a task request.
	ErrSync = errors.New("sync error")

	// ErrMalformedResponse means a response body was not in the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)
