package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// MemoryStateStore defines the interface for card memory state persistence.
// There is at most one state row per (user, card) pair.
type MemoryStateStore interface {
	// Get retrieves the memory state for a (user, card) pair.
	// Returns ErrMemoryStateNotFound if no row exists yet, which is the
	// normal condition for a card that has never been reviewed.
	// NOTE: This method does NOT provide any row locking, so it should not
	// be used when you plan to update the row and need concurrency
	// protection.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardMemoryState, error)

	// GetForUpdate retrieves the memory state with a row-level lock using
	// SELECT FOR UPDATE. Use this within a transaction when the row will be
	// updated, so concurrent reviews of the same card serialize instead of
	// losing updates.
	// Returns ErrMemoryStateNotFound if no row exists yet.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardMemoryState, error)

	// Upsert inserts the state row if none exists for its (card, user) pair,
	// or overwrites all scheduling fields in place otherwise.
	// It handles domain validation internally.
	Upsert(ctx context.Context, state *domain.CardMemoryState) error

	// WithTx returns a MemoryStateStore bound to the provided transaction.
	// The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) MemoryStateStore
}
