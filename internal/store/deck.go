package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// DeckStore defines the read-side interface for decks.
type DeckStore interface {
	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListByUser returns all decks owned by the user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// GetAvailability returns the per-deck study workload for a learner:
	// counts of new and due cards, and the earliest future next review time
	// among cards not yet due.
	GetAvailability(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.DeckAvailability, error)

	// WithTx returns a DeckStore bound to the provided transaction.
	WithTx(tx *sql.Tx) DeckStore
}
