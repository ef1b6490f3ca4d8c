package store

import "errors"

var (
	// ErrNotFound is returned when a lookup by id yields nothing.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned when creating a user with an existing username.
	ErrUsernameTaken = errors.New("username taken")
)
