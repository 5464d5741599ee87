package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// PostgresReviewEventStore implements the store.ReviewEventStore interface
// using a PostgreSQL database as the storage backend. The backing table is
// append-only; this type deliberately exposes no update or delete.
type PostgresReviewEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewEventStore creates a new PostgreSQL implementation of the
// ReviewEventStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresReviewEventStore(db store.DBTX, logger *slog.Logger) *PostgresReviewEventStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_event_store")),
	}
}

// Ensure PostgresReviewEventStore implements store.ReviewEventStore
var _ store.ReviewEventStore = (*PostgresReviewEventStore)(nil)

// Append implements store.ReviewEventStore.Append
func (s *PostgresReviewEventStore) Append(ctx context.Context, event *domain.ReviewEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_events
			(id, session_id, user_id, card_id, memory_state_id, rating, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.SessionID,
		event.UserID,
		event.CardID,
		event.MemoryStateID,
		int(event.Rating),
		event.OccurredAt,
	)
	if err != nil {
		s.logger.Error("failed to append review event",
			slog.String("user_id", event.UserID.String()),
			slog.String("card_id", event.CardID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to append review event: %w", err)
	}

	return nil
}

// ListByCard implements store.ReviewEventStore.ListByCard
func (s *PostgresReviewEventStore) ListByCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) ([]*domain.ReviewEvent, error) {
	query := `
		SELECT id, session_id, user_id, card_id, memory_state_id, rating, occurred_at
		FROM review_events
		WHERE user_id = $1 AND card_id = $2
		ORDER BY occurred_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, userID, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query review events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.ReviewEvent
	for rows.Next() {
		var (
			event     domain.ReviewEvent
			sessionID uuid.NullUUID
			rating    int
		)

		if err := rows.Scan(
			&event.ID,
			&sessionID,
			&event.UserID,
			&event.CardID,
			&event.MemoryStateID,
			&rating,
			&event.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review event row: %w", err)
		}

		if sessionID.Valid {
			id := sessionID.UUID
			event.SessionID = &id
		}
		event.Rating = domain.ReviewRating(rating)

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review event rows: %w", err)
	}

	return events, nil
}

// WithTx implements store.ReviewEventStore.WithTx
func (s *PostgresReviewEventStore) WithTx(tx *sql.Tx) store.ReviewEventStore {
	return &PostgresReviewEventStore{
		db:     tx,
		logger: s.logger,
	}
}
