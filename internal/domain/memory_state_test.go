package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRating(t *testing.T) {
	t.Parallel()

	t.Run("validity", func(t *testing.T) {
		t.Parallel()
		for r := RatingAgain; r <= RatingEasy; r++ {
			assert.True(t, r.IsValid(), "rating %d", r)
		}
		assert.False(t, ReviewRating(0).IsValid())
		assert.False(t, ReviewRating(5).IsValid())
		assert.False(t, ReviewRating(-1).IsValid())
	})

	t.Run("correctness threshold", func(t *testing.T) {
		t.Parallel()
		assert.False(t, RatingAgain.IsCorrect())
		assert.False(t, RatingHard.IsCorrect())
		assert.True(t, RatingGood.IsCorrect())
		assert.True(t, RatingEasy.IsCorrect())
	})

	t.Run("string names", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "again", RatingAgain.String())
		assert.Equal(t, "hard", RatingHard.String())
		assert.Equal(t, "good", RatingGood.String())
		assert.Equal(t, "easy", RatingEasy.String())
		assert.Equal(t, "unknown", ReviewRating(7).String())
	})
}

func TestCardStateIsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []CardState{CardStateNew, CardStateLearning, CardStateReview, CardStateRelearning} {
		assert.True(t, s.IsValid(), "state %q", s)
	}
	assert.False(t, CardState("suspended").IsValid())
	assert.False(t, CardState("").IsValid())
}

func TestNewCardMemoryState(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cardID := uuid.New()

	state, err := NewCardMemoryState(userID, cardID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, state.ID)
	assert.Equal(t, userID, state.UserID)
	assert.Equal(t, cardID, state.CardID)
	assert.Equal(t, CardStateNew, state.State)
	assert.True(t, state.IsNew())
	assert.Zero(t, state.Difficulty)
	assert.Zero(t, state.Stability)
	assert.Zero(t, state.Reps)
	assert.Zero(t, state.Lapses)

	// A virgin card is due immediately.
	assert.False(t, state.NextReviewAt.After(time.Now().UTC()))

	t.Run("empty user ID", func(t *testing.T) {
		t.Parallel()
		_, err := NewCardMemoryState(uuid.Nil, cardID)
		assert.ErrorIs(t, err, ErrEmptyStateUserID)
	})

	t.Run("empty card ID", func(t *testing.T) {
		t.Parallel()
		_, err := NewCardMemoryState(userID, uuid.Nil)
		assert.ErrorIs(t, err, ErrEmptyStateCardID)
	})
}

func TestCardMemoryStateValidate(t *testing.T) {
	t.Parallel()

	newReviewed := func() *CardMemoryState {
		state, err := NewCardMemoryState(uuid.New(), uuid.New())
		require.NoError(t, err)
		state.LastReviewedAt = time.Now().UTC()
		state.Difficulty = 5
		state.Stability = 3
		state.Grade = RatingGood
		state.Reps = 1
		return state
	}

	t.Run("valid reviewed state", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, newReviewed().Validate())
	})

	t.Run("difficulty bounds apply once reviewed", func(t *testing.T) {
		t.Parallel()
		state := newReviewed()
		state.Difficulty = 0.5
		assert.ErrorIs(t, state.Validate(), ErrDifficultyOutOfRange)

		state.Difficulty = 10.5
		assert.ErrorIs(t, state.Validate(), ErrDifficultyOutOfRange)
	})

	t.Run("stability floor applies once reviewed", func(t *testing.T) {
		t.Parallel()
		state := newReviewed()
		state.Stability = 0.05
		assert.ErrorIs(t, state.Validate(), ErrStabilityTooLow)
	})

	t.Run("virgin state carries zeros without error", func(t *testing.T) {
		t.Parallel()
		state, err := NewCardMemoryState(uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.NoError(t, state.Validate())
	})

	t.Run("negative counters", func(t *testing.T) {
		t.Parallel()
		state := newReviewed()
		state.Lapses = -1
		assert.ErrorIs(t, state.Validate(), ErrNegativeLapses)

		state = newReviewed()
		state.Reps = -1
		assert.ErrorIs(t, state.Validate(), ErrNegativeReps)
	})

	t.Run("unknown scheduling state", func(t *testing.T) {
		t.Parallel()
		state := newReviewed()
		state.State = CardState("archived")
		assert.ErrorIs(t, state.Validate(), ErrInvalidCardState)
	})

	t.Run("invalid grade once reviewed", func(t *testing.T) {
		t.Parallel()
		state := newReviewed()
		state.Grade = ReviewRating(0)
		assert.ErrorIs(t, state.Validate(), ErrInvalidRating)
	})
}
