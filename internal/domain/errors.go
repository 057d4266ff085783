package domain

import "errors"

var (
	// ErrBottleNotFound is returned when a bottle is not found
	ErrBottleNotFound = errors.New("bottle not found")

	// ErrInvalidPassword is returned when a mutation request carries the
	// wrong bottle password
	ErrInvalidPassword = errors.New("invalid bottle password")

	// ErrMissingMessage is returned when a bottle has no message in the
	// event log, the cached row, or any other fallback source
	ErrMissingMessage = errors.New("bottle has no message in any source")
)
