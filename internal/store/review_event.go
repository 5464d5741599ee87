package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// ReviewEventStore defines the interface for the append-only review log.
// Events are never updated or deleted once written.
type ReviewEventStore interface {
	// Append writes one review event.
	// It handles domain validation internally.
	Append(ctx context.Context, event *domain.ReviewEvent) error

	// ListByCard returns the full review history for a (user, card) pair in
	// insertion order, oldest first.
	ListByCard(ctx context.Context, userID, cardID uuid.UUID) ([]*domain.ReviewEvent, error)

	// WithTx returns a ReviewEventStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ReviewEventStore
}
