package database

import "errors"

var (
	// ErrNotFound signals a missing entity or an entity hidden from the caller.
	ErrNotFound = errors.New("entity not found")

	// ErrForbidden signals an authorization failure.
	ErrForbidden = errors.New("operation forbidden")

	// ErrInvalidCondition signals a business-rule violation: bad state
	// transition, malformed window, unavailable item and the like.
	ErrInvalidCondition = errors.New("invalid condition")

	// ErrDuplicateEmail signals a users.email uniqueness violation.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrNotAvailable signals booking of an unavailable item.
	ErrNotAvailable = errors.New("item is not available")
)
