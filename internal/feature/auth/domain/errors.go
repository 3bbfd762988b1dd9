// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrUserAlreadyExists indicates that a user with the given username or email already exists.
	// This is returned during registration when attempting to create a duplicate user.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	// This is typically returned during login, reset request, or user lookup operations.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// This is returned during login when username or password is invalid.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidResetToken indicates that a reset token is invalid, expired,
	// or does not match the token stored on the user record.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
