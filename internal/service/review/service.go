// Package review implements the review transaction: applying a rating to a
// card's memory state and persisting the outcome atomically together with
// the append-only review log.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// Common error types for ReviewService
var (
	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardNotOwned indicates that the user does not own the card.
	ErrCardNotOwned = errors.New("unauthorized access: card not owned by user")

	// ErrCardNeverReviewed indicates an operation that requires an existing
	// memory state was attempted on a card that has never been reviewed.
	ErrCardNeverReviewed = errors.New("card has never been reviewed")

	// ErrSessionNotFound indicates that the referenced study session does
	// not exist.
	ErrSessionNotFound = errors.New("study session not found")

	// ErrSessionNotOwned indicates that the referenced study session
	// belongs to a different user.
	ErrSessionNotOwned = errors.New("unauthorized access: session not owned by user")
)

// ReviewService coordinates the review transaction. Each submission is one
// short-lived transaction against storage: load state, advance it through
// the scheduler, upsert the result, and append a review event when a study
// session is given. On any failure the whole transaction rolls back; a
// reader never observes the updated state without its log entry.
type ReviewService interface {
	// SubmitReview applies a rating to a card for a user and returns the
	// full post-review memory state.
	//
	// sessionID may be nil for reviews submitted outside a study session;
	// when present, exactly one review event referencing the session is
	// appended in the same transaction.
	//
	// now is the review timestamp; the zero value means the current time.
	// Callers should pass it explicitly for testability.
	//
	// Submitting the same rating twice advances the state twice: the
	// operation performs no deduplication, which is left to transport-level
	// idempotency keys.
	SubmitReview(
		ctx context.Context,
		userID, cardID uuid.UUID,
		rating domain.ReviewRating,
		sessionID *uuid.UUID,
		now time.Time,
	) (*domain.CardMemoryState, error)

	// PostponeReview pushes a card's next review forward by the given
	// number of days without altering the memory model. The card must have
	// been reviewed at least once.
	PostponeReview(
		ctx context.Context,
		userID, cardID uuid.UUID,
		days int,
	) (*domain.CardMemoryState, error)

	// GetMemoryState returns the current memory state for a card, or the
	// canonical virgin state if the card has never been reviewed.
	GetMemoryState(
		ctx context.Context,
		userID, cardID uuid.UUID,
	) (*domain.CardMemoryState, error)
}
