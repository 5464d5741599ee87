package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewRating is the learner's self-assessment of a single review on the
// ordinal 1-4 scale used by the scheduler.
type ReviewRating int

// Possible review rating values, from "forgot entirely" to "trivially easy".
const (
	RatingAgain ReviewRating = 1
	RatingHard  ReviewRating = 2
	RatingGood  ReviewRating = 3
	RatingEasy  ReviewRating = 4
)

// IsValid reports whether the rating is on the 1-4 scale.
func (r ReviewRating) IsValid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// IsCorrect reports whether the rating counts as a correct answer.
// Good and Easy are correct; Again and Hard are not.
func (r ReviewRating) IsCorrect() bool {
	return r >= RatingGood
}

// String returns the lowercase name of the rating for logging and display.
func (r ReviewRating) String() string {
	switch r {
	case RatingAgain:
		return "again"
	case RatingHard:
		return "hard"
	case RatingGood:
		return "good"
	case RatingEasy:
		return "easy"
	default:
		return "unknown"
	}
}

// CardState is the scheduling phase of a card for a particular learner.
type CardState string

// Possible card scheduling states.
const (
	CardStateNew        CardState = "new"
	CardStateLearning   CardState = "learning"
	CardStateReview     CardState = "review"
	CardStateRelearning CardState = "relearning"
)

// IsValid reports whether the state is one of the known scheduling phases.
func (s CardState) IsValid() bool {
	switch s {
	case CardStateNew, CardStateLearning, CardStateReview, CardStateRelearning:
		return true
	default:
		return false
	}
}

// Common validation errors for CardMemoryState
var (
	ErrEmptyStateUserID     = errors.New("card memory state user ID cannot be empty")
	ErrEmptyStateCardID     = errors.New("card memory state card ID cannot be empty")
	ErrDifficultyOutOfRange = errors.New("difficulty must be within [1, 10] once reviewed")
	ErrStabilityTooLow      = errors.New("stability must be at least 0.1 once reviewed")
	ErrNegativeLapses       = errors.New("lapses cannot be negative")
	ErrNegativeReps         = errors.New("reps cannot be negative")
)

// CardMemoryState tracks a learner's memory of a specific card under the
// FSRS scheduling model. There is at most one state per (user, card) pair;
// the row is created lazily on the first review and mutated in place on
// every subsequent one.
//
// NextReviewAt is always derived from Stability at the moment of the last
// transition; it is never set independently (PostponeReview being the one
// deliberate exception, which shifts the date without touching the model).
type CardMemoryState struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user_id"`
	CardID         uuid.UUID    `json:"card_id"`
	Difficulty     float64      `json:"difficulty"`     // 1-10, higher = harder to retain
	Stability      float64      `json:"stability"`      // days until retrievability decays to ~90%
	Retrievability float64      `json:"retrievability"` // recall probability observed at last review
	Grade          ReviewRating `json:"grade"`          // last rating applied, kept for audit/display
	Lapses         int          `json:"lapses"`         // times the card fell out of review
	Reps           int          `json:"reps"`           // total ratings ever applied
	State          CardState    `json:"state"`
	LastReviewedAt time.Time    `json:"last_reviewed_at"` // zero before the first rating
	NextReviewAt   time.Time    `json:"next_review_at"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewCardMemoryState creates the canonical "virgin" state for a card the
// learner has never reviewed. Difficulty and stability start at zero and are
// assigned by the scheduler on the first rating; the card is due immediately.
func NewCardMemoryState(userID, cardID uuid.UUID) (*CardMemoryState, error) {
	now := time.Now().UTC()
	state := &CardMemoryState{
		ID:           uuid.New(),
		UserID:       userID,
		CardID:       cardID,
		State:        CardStateNew,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// IsNew reports whether the card has never been rated. A zero LastReviewedAt
// is the authoritative marker; the State field follows it.
func (s *CardMemoryState) IsNew() bool {
	return s.LastReviewedAt.IsZero()
}

// Validate checks if the CardMemoryState has valid data.
// Returns an error if any field fails validation.
func (s *CardMemoryState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStateUserID
	}

	if s.CardID == uuid.Nil {
		return ErrEmptyStateCardID
	}

	if !s.State.IsValid() {
		return ErrInvalidCardState
	}

	if s.Lapses < 0 {
		return ErrNegativeLapses
	}

	if s.Reps < 0 {
		return ErrNegativeReps
	}

	// Difficulty and stability bounds only apply once the scheduler has
	// assigned them; the virgin state carries zeros.
	if !s.IsNew() {
		if s.Difficulty < 1 || s.Difficulty > 10 {
			return ErrDifficultyOutOfRange
		}
		if s.Stability < 0.1 {
			return ErrStabilityTooLow
		}
		if !s.Grade.IsValid() {
			return ErrInvalidRating
		}
	}

	return nil
}
