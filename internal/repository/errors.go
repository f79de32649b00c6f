package repository

import "errors"

// Sentinel errors the repositories and their consumers agree on.
// Handlers map these onto HTTP statuses; nothing below the API layer
// ever decides a status code.
var (
	// ErrNotFound: the target row does not exist (deleted or never created).
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail: an account with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateMember: a membership row for this (project, user) pair
	// already exists. Raised by the pre-write check in the console layer
	// and by the unique index when two sessions race past that check.
	ErrDuplicateMember = errors.New("user is already a member of this project")
)
