package domain

import "errors"

var (
	// ErrConfiguration marks a principal built in an invalid state, e.g. a unit leader
	// without a unit. The session holding it must be ended, not repaired.
	ErrConfiguration = errors.New("principal misconfigured")

	// ErrPermissionDenied is returned when the principal acts outside its granted scope.
	ErrPermissionDenied = errors.New("you do not have rights to do this")

	// ErrValidation marks malformed input: non-positive amounts, missing target unit,
	// members outside the stated unit.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound is returned when a referenced member or transaction does not exist.
	ErrNotFound = errors.New("not found")
)
