package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// PostgresStudySessionStore implements the store.StudySessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudySessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudySessionStore creates a new PostgreSQL implementation of
// the StudySessionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStudySessionStore(db store.DBTX, logger *slog.Logger) *PostgresStudySessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudySessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_session_store")),
	}
}

// Ensure PostgresStudySessionStore implements store.StudySessionStore
var _ store.StudySessionStore = (*PostgresStudySessionStore)(nil)

// Create implements store.StudySessionStore.Create
func (s *PostgresStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_sessions
			(id, user_id, deck_id, cards_studied, correct_answers, average_rating,
			 started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.DeckID,
		session.CardsStudied,
		session.CorrectAnswers,
		session.AverageRating,
		session.StartedAt,
		session.EndedAt,
	)
	if err != nil {
		s.logger.Error("failed to create study session",
			slog.String("user_id", session.UserID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create study session: %w", err)
	}

	return nil
}

// GetByID implements store.StudySessionStore.GetByID
func (s *PostgresStudySessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	query := `
		SELECT id, user_id, deck_id, cards_studied, correct_answers,
		       average_rating, started_at, ended_at
		FROM study_sessions
		WHERE id = $1`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get study session: %w", err)
	}

	return session, nil
}

// Update implements store.StudySessionStore.Update
// The counters are overwritten wholesale; sessions are never incremented
// field by field server-side.
func (s *PostgresStudySessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE study_sessions
		SET cards_studied = $1, correct_answers = $2, average_rating = $3,
		    ended_at = $4
		WHERE id = $5`

	result, err := s.db.ExecContext(ctx, query,
		session.CardsStudied,
		session.CorrectAnswers,
		session.AverageRating,
		session.EndedAt,
		session.ID,
	)
	if err != nil {
		s.logger.Error("failed to update study session",
			slog.String("session_id", session.ID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update study session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrSessionNotFound
	}

	return nil
}

// ListByUser implements store.StudySessionStore.ListByUser
func (s *PostgresStudySessionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.StudySession, error) {
	query := `
		SELECT id, user_id, deck_id, cards_studied, correct_answers,
		       average_rating, started_at, ended_at
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT CASE WHEN $2 > 0 THEN $2 ELSE NULL END`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query study sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.StudySession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan study session row: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating study session rows: %w", err)
	}

	return sessions, nil
}

// WithTx implements store.StudySessionStore.WithTx
func (s *PostgresStudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	return &PostgresStudySessionStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession scans one study session row, mapping the nullable ended_at
// column to a nil pointer for running sessions.
func scanSession(row rowScanner) (*domain.StudySession, error) {
	var (
		session domain.StudySession
		endedAt sql.NullTime
	)

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.DeckID,
		&session.CardsStudied,
		&session.CorrectAnswers,
		&session.AverageRating,
		&session.StartedAt,
		&endedAt,
	)
	if err != nil {
		return nil, err
	}

	if endedAt.Valid {
		t := endedAt.Time.UTC()
		session.EndedAt = &t
	}

	return &session, nil
}
