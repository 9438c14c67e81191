package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrRoleNotFound      = errors.New("role not found")
	ErrIDOrEmailRequired = errors.New("either id or email is required")
	ErrUserUpdateFailed  = errors.New("user update failed")

	// ErrDatabase wraps faults reported by the database driver with an error code.
	ErrDatabase = errors.New("database error")
	// ErrUnexpected wraps any other data-access fault.
	ErrUnexpected = errors.New("unexpected error")

	ErrInvalidToken = errors.New("invalid token")
)
