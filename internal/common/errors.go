package common

import "errors"

var (
	// Local store errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors for outgoing bodies.
	ErrInvalidDraft = errors.New("invalid draft")
)
