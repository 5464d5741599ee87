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

// PostgresMemoryStateStore implements the store.MemoryStateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMemoryStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMemoryStateStore creates a new PostgreSQL implementation of the
// MemoryStateStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMemoryStateStore(db store.DBTX, logger *slog.Logger) *PostgresMemoryStateStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMemoryStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "memory_state_store")),
	}
}

// Ensure PostgresMemoryStateStore implements store.MemoryStateStore
var _ store.MemoryStateStore = (*PostgresMemoryStateStore)(nil)

const memoryStateColumns = `
	id, user_id, card_id, difficulty, stability, retrievability,
	grade, lapses, reps, state, last_reviewed_at, next_review_at,
	created_at, updated_at`

// Get implements store.MemoryStateStore.Get
func (s *PostgresMemoryStateStore) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.CardMemoryState, error) {
	query := `SELECT` + memoryStateColumns + `
		FROM card_memory_states
		WHERE user_id = $1 AND card_id = $2`

	return s.scanOne(s.db.QueryRowContext(ctx, query, userID, cardID))
}

// GetForUpdate implements store.MemoryStateStore.GetForUpdate
// It acquires a row-level lock so concurrent reviews of the same (user,
// card) pair serialize on the storage engine instead of losing updates.
func (s *PostgresMemoryStateStore) GetForUpdate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.CardMemoryState, error) {
	query := `SELECT` + memoryStateColumns + `
		FROM card_memory_states
		WHERE user_id = $1 AND card_id = $2
		FOR UPDATE`

	return s.scanOne(s.db.QueryRowContext(ctx, query, userID, cardID))
}

// Upsert implements store.MemoryStateStore.Upsert
// The (card_id, user_id) pair is unique; an existing row has all scheduling
// fields overwritten in place.
func (s *PostgresMemoryStateStore) Upsert(ctx context.Context, state *domain.CardMemoryState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO card_memory_states (` + memoryStateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (card_id, user_id) DO UPDATE SET
			difficulty = EXCLUDED.difficulty,
			stability = EXCLUDED.stability,
			retrievability = EXCLUDED.retrievability,
			grade = EXCLUDED.grade,
			lapses = EXCLUDED.lapses,
			reps = EXCLUDED.reps,
			state = EXCLUDED.state,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			next_review_at = EXCLUDED.next_review_at,
			updated_at = EXCLUDED.updated_at`

	var lastReviewed sql.NullTime
	if !state.LastReviewedAt.IsZero() {
		lastReviewed = sql.NullTime{Time: state.LastReviewedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		state.ID,
		state.UserID,
		state.CardID,
		state.Difficulty,
		state.Stability,
		state.Retrievability,
		int(state.Grade),
		state.Lapses,
		state.Reps,
		string(state.State),
		lastReviewed,
		state.NextReviewAt,
		state.CreatedAt,
		state.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to upsert card memory state",
			slog.String("user_id", state.UserID.String()),
			slog.String("card_id", state.CardID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to upsert card memory state: %w", err)
	}

	return nil
}

// WithTx implements store.MemoryStateStore.WithTx
func (s *PostgresMemoryStateStore) WithTx(tx *sql.Tx) store.MemoryStateStore {
	return &PostgresMemoryStateStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanOne scans a single memory state row, mapping the nullable
// last_reviewed_at column to the domain's zero-time convention.
func (s *PostgresMemoryStateStore) scanOne(row *sql.Row) (*domain.CardMemoryState, error) {
	var (
		state        domain.CardMemoryState
		grade        int
		phase        string
		lastReviewed sql.NullTime
	)

	err := row.Scan(
		&state.ID,
		&state.UserID,
		&state.CardID,
		&state.Difficulty,
		&state.Stability,
		&state.Retrievability,
		&grade,
		&state.Lapses,
		&state.Reps,
		&phase,
		&lastReviewed,
		&state.NextReviewAt,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMemoryStateNotFound
		}
		return nil, fmt.Errorf("failed to get card memory state: %w", err)
	}

	state.Grade = domain.ReviewRating(grade)
	state.State = domain.CardState(phase)
	if lastReviewed.Valid {
		state.LastReviewedAt = lastReviewed.Time.UTC()
	} else {
		state.LastReviewedAt = time.Time{}
	}

	return &state, nil
}
