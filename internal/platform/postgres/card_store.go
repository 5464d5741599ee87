package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore
var _ store.CardStore = (*PostgresCardStore)(nil)

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `
		SELECT id, deck_id, content, position, created_at, updated_at
		FROM cards
		WHERE id = $1`

	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.DeckID,
		&card.Content,
		&card.Position,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return &card, nil
}

// GetDueCards implements store.CardStore.GetDueCards
// The due boundary is inclusive: a card whose next review time equals now is
// due. Earliest-due cards surface first; display position breaks ties.
func (s *PostgresCardStore) GetDueCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.Card, error) {
	query := `
		SELECT c.id, c.deck_id, c.content, c.position, c.created_at, c.updated_at
		FROM cards c
		JOIN decks d ON d.id = c.deck_id
		JOIN card_memory_states ms ON ms.card_id = c.id AND ms.user_id = $1
		WHERE d.user_id = $1
		  AND ms.next_review_at <= $2
		  AND ($3::uuid IS NULL OR c.deck_id = $3)
		ORDER BY ms.next_review_at ASC, c.position ASC
		LIMIT CASE WHEN $4 > 0 THEN $4 ELSE NULL END`

	rows, err := s.db.QueryContext(ctx, query, userID, now, nullableUUID(deckID), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCards(rows)
}

// GetNewCards implements store.CardStore.GetNewCards
// New cards are those with no memory state row yet, or one still in the new
// state, returned in catalog order.
func (s *PostgresCardStore) GetNewCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	limit int,
) ([]*domain.Card, error) {
	query := `
		SELECT c.id, c.deck_id, c.content, c.position, c.created_at, c.updated_at
		FROM cards c
		JOIN decks d ON d.id = c.deck_id
		LEFT JOIN card_memory_states ms ON ms.card_id = c.id AND ms.user_id = $1
		WHERE d.user_id = $1
		  AND (ms.id IS NULL OR ms.state = 'new')
		  AND ($2::uuid IS NULL OR c.deck_id = $2)
		ORDER BY c.position ASC, c.created_at ASC
		LIMIT CASE WHEN $3 > 0 THEN $3 ELSE NULL END`

	rows, err := s.db.QueryContext(ctx, query, userID, nullableUUID(deckID), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query new cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCards(rows)
}

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanCards collects card rows from a query result.
func scanCards(rows *sql.Rows) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.DeckID,
			&card.Content,
			&card.Position,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card rows: %w", err)
	}

	return cards, nil
}

// nullableUUID maps the zero UUID to NULL so "all decks" queries can share
// one statement with deck-scoped ones.
func nullableUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}
