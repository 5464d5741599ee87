package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// StudySessionStore defines the interface for study session persistence.
// Sessions are created at session start and overwritten wholesale exactly
// once at session end.
type StudySessionStore interface {
	// Create saves a new study session row.
	// It handles domain validation internally.
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// Update overwrites the session's counters and end time.
	// Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, session *domain.StudySession) error

	// ListByUser returns the user's sessions, most recently started first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudySession, error)

	// WithTx returns a StudySessionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) StudySessionStore
}
