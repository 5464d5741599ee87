package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// CardStore defines the read-side interface for the card catalog and the
// due-set projections used to build study queues.
type CardStore interface {
	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetDueCards returns the learner's cards whose next review time has
	// passed (next_review_at <= now, boundary inclusive), ordered by next
	// review time ascending and then by the card's display position.
	// A zero deckID means all decks; limit <= 0 means no limit.
	GetDueCards(
		ctx context.Context,
		userID, deckID uuid.UUID,
		now time.Time,
		limit int,
	) ([]*domain.Card, error)

	// GetNewCards returns the learner's cards with no memory state row yet
	// (or one still in the new state), in catalog order.
	// A zero deckID means all decks; limit <= 0 means no limit.
	GetNewCards(
		ctx context.Context,
		userID, deckID uuid.UUID,
		limit int,
	) ([]*domain.Card, error)

	// WithTx returns a CardStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CardStore
}
