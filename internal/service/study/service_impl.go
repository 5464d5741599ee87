package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// Verify interface compliance at compile time
var _ StudyService = (*studyServiceImpl)(nil)

// studyServiceImpl implements the StudyService interface.
type studyServiceImpl struct {
	cardStore store.CardStore
	deckStore store.DeckStore
	sessions  store.StudySessionStore
	logger    *slog.Logger
}

// NewStudyService creates a new StudyService implementation.
func NewStudyService(
	cardStore store.CardStore,
	deckStore store.DeckStore,
	sessions store.StudySessionStore,
	log *slog.Logger,
) StudyService {
	if cardStore == nil || deckStore == nil || sessions == nil {
		panic("stores cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &studyServiceImpl{
		cardStore: cardStore,
		deckStore: deckStore,
		sessions:  sessions,
		logger:    log.With(slog.String("component", "study_service")),
	}
}

// GetQueue implements StudyService.GetQueue.
func (s *studyServiceImpl) GetQueue(
	ctx context.Context,
	userID, deckID uuid.UUID,
	now time.Time,
	dueLimit, newLimit int,
) (*StudyQueue, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if now.IsZero() {
		now = time.Now().UTC()
	}

	if deckID != uuid.Nil {
		if err := s.checkDeckOwnership(ctx, userID, deckID); err != nil {
			return nil, err
		}
	}

	due, err := s.cardStore.GetDueCards(ctx, userID, deckID, now, dueLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due cards: %w", err)
	}

	fresh, err := s.cardStore.GetNewCards(ctx, userID, deckID, newLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get new cards: %w", err)
	}

	log.Debug("built study queue",
		slog.String("user_id", userID.String()),
		slog.Int("due", len(due)),
		slog.Int("new", len(fresh)))

	return &StudyQueue{Due: due, New: fresh}, nil
}

// GetDeckAvailability implements StudyService.GetDeckAvailability.
func (s *studyServiceImpl) GetDeckAvailability(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]*domain.DeckAvailability, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	availability, err := s.deckStore.GetAvailability(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck availability: %w", err)
	}

	return availability, nil
}

// StartSession implements StudyService.StartSession.
func (s *studyServiceImpl) StartSession(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkDeckOwnership(ctx, userID, deckID); err != nil {
		return nil, err
	}

	session, err := domain.NewStudySession(userID, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	log.Debug("study session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()))

	return session, nil
}

// EndSession implements StudyService.EndSession.
func (s *studyServiceImpl) EndSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	totals domain.SessionTotals,
	now time.Time,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if now.IsZero() {
		now = time.Now().UTC()
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.UserID != userID {
		return nil, ErrSessionNotOwned
	}

	if err := session.End(totals, now); err != nil {
		return nil, err
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	log.Debug("study session ended",
		slog.String("session_id", session.ID.String()),
		slog.Int("cards_studied", session.CardsStudied),
		slog.Int("correct_answers", session.CorrectAnswers))

	return session, nil
}

// ListSessions implements StudyService.ListSessions.
func (s *studyServiceImpl) ListSessions(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.StudySession, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

// checkDeckOwnership verifies the deck exists and belongs to the user.
func (s *studyServiceImpl) checkDeckOwnership(ctx context.Context, userID, deckID uuid.UUID) error {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return ErrDeckNotFound
		}
		return fmt.Errorf("failed to get deck: %w", err)
	}

	if deck.UserID != userID {
		return ErrDeckNotOwned
	}

	return nil
}
