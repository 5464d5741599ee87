package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/domain/fsrs"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db         *sql.DB
	cardStore  store.CardStore
	deckStore  store.DeckStore
	stateStore store.MemoryStateStore
	eventStore store.ReviewEventStore
	sessions   store.StudySessionStore
	scheduler  fsrs.Service
	logger     *slog.Logger

	// runTx wraps the transactional sections. Replaceable in tests.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	db *sql.DB,
	cardStore store.CardStore,
	deckStore store.DeckStore,
	stateStore store.MemoryStateStore,
	eventStore store.ReviewEventStore,
	sessions store.StudySessionStore,
	scheduler fsrs.Service,
	log *slog.Logger,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if cardStore == nil || deckStore == nil || stateStore == nil ||
		eventStore == nil || sessions == nil {
		panic("stores cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		db:         db,
		cardStore:  cardStore,
		deckStore:  deckStore,
		stateStore: stateStore,
		eventStore: eventStore,
		sessions:   sessions,
		scheduler:  scheduler,
		logger:     log.With(slog.String("component", "review_service")),
		runTx:      store.RunInTransaction,
	}
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	rating domain.ReviewRating,
	sessionID *uuid.UUID,
	now time.Time,
) (*domain.CardMemoryState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !rating.IsValid() {
		return nil, domain.ErrInvalidRating
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	log.Debug("processing review",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("rating", rating.String()))

	var updated *domain.CardMemoryState
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)
		decks := s.deckStore.WithTx(tx)
		states := s.stateStore.WithTx(tx)
		events := s.eventStore.WithTx(tx)
		sessions := s.sessions.WithTx(tx)

		if err := s.checkCardOwnership(ctx, cards, decks, userID, cardID); err != nil {
			return err
		}

		// Lock the state row so a concurrent review of the same card
		// serializes behind this transaction instead of losing an update.
		state, err := states.GetForUpdate(ctx, userID, cardID)
		if err != nil {
			if !errors.Is(err, store.ErrMemoryStateNotFound) {
				return fmt.Errorf("failed to get memory state: %w", err)
			}
			// First review of this card: start from the virgin state.
			state, err = domain.NewCardMemoryState(userID, cardID)
			if err != nil {
				return fmt.Errorf("failed to create memory state: %w", err)
			}
		}

		next, err := s.scheduler.AdvanceReview(state, rating, now)
		if err != nil {
			return fmt.Errorf("failed to advance memory state: %w", err)
		}

		if err := states.Upsert(ctx, next); err != nil {
			return fmt.Errorf("failed to upsert memory state: %w", err)
		}

		if sessionID != nil {
			session, err := sessions.GetByID(ctx, *sessionID)
			if err != nil {
				if errors.Is(err, store.ErrSessionNotFound) {
					return ErrSessionNotFound
				}
				return fmt.Errorf("failed to get session: %w", err)
			}
			if session.UserID != userID {
				return ErrSessionNotOwned
			}

			event, err := domain.NewReviewEvent(sessionID, userID, cardID, next.ID, rating, now)
			if err != nil {
				return fmt.Errorf("failed to create review event: %w", err)
			}
			if err := events.Append(ctx, event); err != nil {
				return fmt.Errorf("failed to append review event: %w", err)
			}
		}

		updated = next
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	log.Debug("review processed",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("rating", rating.String()),
		slog.String("state", string(updated.State)),
		slog.Float64("difficulty", updated.Difficulty),
		slog.Float64("stability", updated.Stability),
		slog.Time("next_review_at", updated.NextReviewAt))

	return updated, nil
}

// PostponeReview implements ReviewService.PostponeReview.
func (s *reviewServiceImpl) PostponeReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	days int,
) (*domain.CardMemoryState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := time.Now().UTC()

	var updated *domain.CardMemoryState
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)
		decks := s.deckStore.WithTx(tx)
		states := s.stateStore.WithTx(tx)

		if err := s.checkCardOwnership(ctx, cards, decks, userID, cardID); err != nil {
			return err
		}

		state, err := states.GetForUpdate(ctx, userID, cardID)
		if err != nil {
			if errors.Is(err, store.ErrMemoryStateNotFound) {
				return ErrCardNeverReviewed
			}
			return fmt.Errorf("failed to get memory state: %w", err)
		}

		next, err := s.scheduler.PostponeReview(state, days, now)
		if err != nil {
			return err
		}

		if err := states.Upsert(ctx, next); err != nil {
			return fmt.Errorf("failed to upsert memory state: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if isServiceError(err) || errors.Is(err, fsrs.ErrInvalidDays) {
			return nil, err
		}
		log.Error("failed to postpone review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, fmt.Errorf("failed to postpone review: %w", err)
	}

	return updated, nil
}

// GetMemoryState implements ReviewService.GetMemoryState.
func (s *reviewServiceImpl) GetMemoryState(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.CardMemoryState, error) {
	if err := s.checkCardOwnership(ctx, s.cardStore, s.deckStore, userID, cardID); err != nil {
		return nil, err
	}

	state, err := s.stateStore.Get(ctx, userID, cardID)
	if err != nil {
		if errors.Is(err, store.ErrMemoryStateNotFound) {
			return domain.NewCardMemoryState(userID, cardID)
		}
		return nil, fmt.Errorf("failed to get memory state: %w", err)
	}

	return state, nil
}

// checkCardOwnership verifies the card exists and its deck belongs to the
// user. Ownership is resolved through the deck; cards carry no user column.
func (s *reviewServiceImpl) checkCardOwnership(
	ctx context.Context,
	cards store.CardStore,
	decks store.DeckStore,
	userID, cardID uuid.UUID,
) error {
	card, err := cards.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to get card: %w", err)
	}

	deck, err := decks.GetByID(ctx, card.DeckID)
	if err != nil {
		return fmt.Errorf("failed to get deck: %w", err)
	}

	if deck.UserID != userID {
		return ErrCardNotOwned
	}

	return nil
}

// isServiceError reports whether err is one of this service's sentinel
// errors, which pass through to the caller unwrapped.
func isServiceError(err error) bool {
	return errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrCardNotOwned) ||
		errors.Is(err, ErrCardNeverReviewed) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionNotOwned) ||
		errors.Is(err, domain.ErrInvalidRating)
}
