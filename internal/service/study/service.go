// Package study builds study queues from the due-set projections and keeps
// the per-session bookkeeping records.
package study

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// Common error types for StudyService
var (
	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDeckNotOwned indicates that the user does not own the deck.
	ErrDeckNotOwned = errors.New("unauthorized access: deck not owned by user")

	// ErrSessionNotFound indicates that the study session does not exist.
	ErrSessionNotFound = errors.New("study session not found")

	// ErrSessionNotOwned indicates that the session belongs to another user.
	ErrSessionNotOwned = errors.New("unauthorized access: session not owned by user")
)

// StudyQueue is what the learner studies next: cards already due for
// review, earliest first, followed by new cards in catalog order.
type StudyQueue struct {
	Due []*domain.Card `json:"due"`
	New []*domain.Card `json:"new"`
}

// StudyService provides the read-only due-set projections used to build a
// study queue, plus the session lifecycle. Queue reads never mutate state
// and are safe to call concurrently.
type StudyService interface {
	// GetQueue returns the due and new cards for a deck at the given time.
	// The due boundary is inclusive: a card due exactly at now is included.
	// newLimit caps the new-card portion; dueLimit caps the due portion;
	// zero means no cap.
	GetQueue(
		ctx context.Context,
		userID, deckID uuid.UUID,
		now time.Time,
		dueLimit, newLimit int,
	) (*StudyQueue, error)

	// GetDeckAvailability returns the per-deck workload preview: new and
	// due counts plus the earliest upcoming review time.
	GetDeckAvailability(
		ctx context.Context,
		userID uuid.UUID,
		now time.Time,
	) ([]*domain.DeckAvailability, error)

	// StartSession creates a study session with zero counters.
	StartSession(ctx context.Context, userID, deckID uuid.UUID) (*domain.StudySession, error)

	// EndSession overwrites the session's counters wholesale with the
	// client-submitted totals and stamps the end time. A missing session
	// yields ErrSessionNotFound with no state change.
	EndSession(
		ctx context.Context,
		userID, sessionID uuid.UUID,
		totals domain.SessionTotals,
		now time.Time,
	) (*domain.StudySession, error)

	// ListSessions returns the user's sessions, most recent first.
	ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudySession, error)
}
