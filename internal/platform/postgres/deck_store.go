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

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// GetByID implements store.DeckStore.GetByID
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM decks
		WHERE id = $1`

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&deck.Description,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	return &deck, nil
}

// ListByUser implements store.DeckStore.ListByUser
func (s *PostgresDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM decks
		WHERE user_id = $1
		ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*domain.Deck
	for rows.Next() {
		var deck domain.Deck
		if err := rows.Scan(
			&deck.ID,
			&deck.UserID,
			&deck.Name,
			&deck.Description,
			&deck.CreatedAt,
			&deck.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		decks = append(decks, &deck)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deck rows: %w", err)
	}

	return decks, nil
}

// GetAvailability implements store.DeckStore.GetAvailability
// For each deck it counts new cards (no state row yet, or still in the new
// state), cards due now (boundary inclusive), and the earliest future due
// time among cards not yet due, to preview upcoming workload.
func (s *PostgresDeckStore) GetAvailability(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]*domain.DeckAvailability, error) {
	query := `
		SELECT
			d.id,
			d.name,
			COUNT(c.id) FILTER (WHERE ms.id IS NULL OR ms.state = 'new') AS new_cards,
			COUNT(c.id) FILTER (WHERE ms.id IS NOT NULL AND ms.state <> 'new'
				AND ms.next_review_at <= $2) AS due_cards,
			MIN(ms.next_review_at) FILTER (WHERE ms.next_review_at > $2) AS next_review_at
		FROM decks d
		LEFT JOIN cards c ON c.deck_id = d.id
		LEFT JOIN card_memory_states ms ON ms.card_id = c.id AND ms.user_id = $1
		WHERE d.user_id = $1
		GROUP BY d.id, d.name
		ORDER BY d.name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query deck availability: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var availability []*domain.DeckAvailability
	for rows.Next() {
		var (
			entry      domain.DeckAvailability
			nextReview sql.NullTime
		)

		if err := rows.Scan(
			&entry.DeckID,
			&entry.Name,
			&entry.NewCards,
			&entry.DueCards,
			&nextReview,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deck availability row: %w", err)
		}

		if nextReview.Valid {
			t := nextReview.Time.UTC()
			entry.NextReviewAt = &t
		}

		availability = append(availability, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deck availability rows: %w", err)
	}

	return availability, nil
}

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}
