package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for ReviewEvent
var (
	ErrEmptyEventCardID  = errors.New("review event card ID cannot be empty")
	ErrEmptyEventUserID  = errors.New("review event user ID cannot be empty")
	ErrEmptyEventStateID = errors.New("review event memory state ID cannot be empty")
)

// ReviewEvent is one entry in the append-only review log. Exactly one event
// is written per submitted rating that occurs inside a study session.
// Events are immutable once written; ordering by OccurredAt reconstructs the
// full review history for a card.
type ReviewEvent struct {
	ID            uuid.UUID    `json:"id"`
	SessionID     *uuid.UUID   `json:"session_id,omitempty"` // nil for reviews outside a session
	UserID        uuid.UUID    `json:"user_id"`
	CardID        uuid.UUID    `json:"card_id"`
	MemoryStateID uuid.UUID    `json:"memory_state_id"` // the state row as it exists after this review
	Rating        ReviewRating `json:"rating"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

// NewReviewEvent creates a review log entry for a rating applied to a card,
// referencing the memory state row as it exists after the review.
// sessionID may be nil for reviews submitted outside a study session.
func NewReviewEvent(
	sessionID *uuid.UUID,
	userID, cardID, memoryStateID uuid.UUID,
	rating ReviewRating,
	occurredAt time.Time,
) (*ReviewEvent, error) {
	event := &ReviewEvent{
		ID:            uuid.New(),
		SessionID:     sessionID,
		UserID:        userID,
		CardID:        cardID,
		MemoryStateID: memoryStateID,
		Rating:        rating,
		OccurredAt:    occurredAt,
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the ReviewEvent has valid data.
// Returns an error if any field fails validation.
func (e *ReviewEvent) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrEmptyEventUserID
	}

	if e.CardID == uuid.Nil {
		return ErrEmptyEventCardID
	}

	if e.MemoryStateID == uuid.Nil {
		return ErrEmptyEventStateID
	}

	if !e.Rating.IsValid() {
		return ErrInvalidRating
	}

	return nil
}
