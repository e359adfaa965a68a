package user

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")

	// PgUniqueViolation is the Postgres error code for duplicate keys.
	PgUniqueViolation = "23505"
)
