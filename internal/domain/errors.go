package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidRating is returned when a review rating is outside the 1-4 scale.
	ErrInvalidRating = errors.New("invalid review rating")

	// ErrInvalidCardState is returned when a scheduling state is not one of
	// the known phases (new, learning, review, relearning).
	ErrInvalidCardState = errors.New("invalid card state")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
