// Package apperr defines the sentinel errors shared by the service and
// handler layers. Handlers map each kind to exactly one HTTP status.
package apperr

import "errors"

var (
	// ErrValidation is returned when a required field is missing or empty.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a unique key (username, email) is already taken.
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when no valid token accompanies the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when the caller is authenticated but does not own the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when the resource does not exist.
	ErrNotFound = errors.New("not found")
)
