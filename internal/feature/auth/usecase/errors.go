// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a token names a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a username that already exists.
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when the username is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTooManyAttempts is returned when a username exceeded its sign-in attempt budget.
	ErrTooManyAttempts = errors.New("too many sign-in attempts")

	// ErrInternal wraps unexpected persistence failures. The cause is logged, never returned to clients.
	ErrInternal = errors.New("internal error")
)
