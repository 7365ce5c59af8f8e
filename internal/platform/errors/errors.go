package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrEmptyDeck    = errors.New("deck has no valid cards")
	ErrNoSavedDeck  = errors.New("no saved deck")
	// ErrStateViolation marks an event the session invariants make
	// unreachable. It always indicates a bug in the caller or the core.
	ErrStateViolation = errors.New("state violation")
)
