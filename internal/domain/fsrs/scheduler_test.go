package fsrs

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

func newVirginState(t *testing.T) *domain.CardMemoryState {
	t.Helper()
	state, err := domain.NewCardMemoryState(uuid.New(), uuid.New())
	require.NoError(t, err, "Failed to create virgin memory state")
	return state
}

func newReviewState(t *testing.T, difficulty, stability float64, lastReviewed time.Time) *domain.CardMemoryState {
	t.Helper()
	state := newVirginState(t)
	state.Difficulty = difficulty
	state.Stability = stability
	state.State = domain.CardStateReview
	state.LastReviewedAt = lastReviewed
	state.Reps = 1
	return state
}

func TestAdvanceFirstReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	testCases := []struct {
		name        string
		rating      domain.ReviewRating
		expectState domain.CardState
	}{
		{
			name:        "Again enters learning",
			rating:      domain.RatingAgain,
			expectState: domain.CardStateLearning,
		},
		{
			name:        "Hard enters learning",
			rating:      domain.RatingHard,
			expectState: domain.CardStateLearning,
		},
		{
			name:        "Good enters learning",
			rating:      domain.RatingGood,
			expectState: domain.CardStateLearning,
		},
		{
			name:        "Easy goes straight to review",
			rating:      domain.RatingEasy,
			expectState: domain.CardStateReview,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state := newVirginState(t)

			next := advance(state, tc.rating, now, params)

			assert.Equal(t, tc.expectState, next.State)
			assert.Equal(t, 1, next.Reps, "first review must set reps to 1")
			assert.Equal(t, 0, next.Lapses, "first review never records a lapse")
			assert.Equal(t, tc.rating, next.Grade)
			assert.Equal(t, now, next.LastReviewedAt)

			// A card that was never reviewed has not decayed.
			assert.InDelta(t, 1.0, next.Retrievability, 1e-12)

			// Initial stability is seeded directly from the weight vector.
			assert.InDelta(t, params.W[tc.rating-1], next.Stability, 1e-12)

			assert.GreaterOrEqual(t, next.Difficulty, 1.0)
			assert.LessOrEqual(t, next.Difficulty, 10.0)
			assert.True(t, next.NextReviewAt.After(now))
		})
	}
}

func TestAdvanceFirstReviewDifficultyOrdering(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	again := advance(newVirginState(t), domain.RatingAgain, now, params)
	easy := advance(newVirginState(t), domain.RatingEasy, now, params)

	assert.Greater(t, again.Difficulty, easy.Difficulty,
		"a failed first recall must seed a harder card than an easy one")
	assert.Greater(t, easy.Stability, again.Stability,
		"an easy first recall must seed a more stable card")
}

func TestAdvanceReviewLapse(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()
	state := newReviewState(t, 5.0, 10.0, now.AddDate(0, 0, -10))

	next := advance(state, domain.RatingAgain, now, params)

	assert.Equal(t, domain.CardStateRelearning, next.State)
	assert.Equal(t, 1, next.Lapses, "a failed review-phase recall is a lapse")
	assert.Equal(t, 2, next.Reps)
	assert.Less(t, next.Stability, state.Stability,
		"a lapse must shrink stability")
	assert.GreaterOrEqual(t, next.Stability, 0.1)

	// Ten days elapsed at stability ten sits exactly on the 0.9 calibration
	// point of the forgetting curve.
	assert.InDelta(t, 0.9, next.Retrievability, 1e-9)
}

func TestAdvanceReviewRecallGrowsStability(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	for _, rating := range []domain.ReviewRating{domain.RatingHard, domain.RatingGood, domain.RatingEasy} {
		state := newReviewState(t, 5.0, 10.0, now.AddDate(0, 0, -10))

		next := advance(state, rating, now, params)

		assert.Equal(t, domain.CardStateReview, next.State)
		assert.Equal(t, 0, next.Lapses)
		assert.Greater(t, next.Stability, state.Stability,
			"successful recall at rating %d must grow stability", rating)
	}
}

func TestAdvanceReviewRatingOrdering(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()
	lastReviewed := now.AddDate(0, 0, -10)

	hard := advance(newReviewState(t, 5.0, 10.0, lastReviewed), domain.RatingHard, now, params)
	good := advance(newReviewState(t, 5.0, 10.0, lastReviewed), domain.RatingGood, now, params)
	easy := advance(newReviewState(t, 5.0, 10.0, lastReviewed), domain.RatingEasy, now, params)

	assert.Less(t, hard.Stability, good.Stability)
	assert.Less(t, good.Stability, easy.Stability)
	assert.Greater(t, hard.Difficulty, good.Difficulty)
	assert.Greater(t, good.Difficulty, easy.Difficulty)
}

func TestAdvanceLearningPhase(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	t.Run("Again keeps difficulty and phase", func(t *testing.T) {
		t.Parallel()
		state := newReviewState(t, 6.0, 2.0, now.AddDate(0, 0, -1))
		state.State = domain.CardStateLearning

		next := advance(state, domain.RatingAgain, now, params)

		assert.Equal(t, domain.CardStateLearning, next.State)
		assert.Equal(t, state.Difficulty, next.Difficulty,
			"Again in a learning phase must not move difficulty")
		assert.Equal(t, 0, next.Lapses,
			"learning-phase failures are not lapses")
	})

	t.Run("Good graduates to review", func(t *testing.T) {
		t.Parallel()
		state := newReviewState(t, 6.0, 2.0, now.AddDate(0, 0, -1))
		state.State = domain.CardStateLearning

		next := advance(state, domain.RatingGood, now, params)

		assert.Equal(t, domain.CardStateReview, next.State)
	})

	t.Run("Easy graduates relearning to review", func(t *testing.T) {
		t.Parallel()
		state := newReviewState(t, 6.0, 2.0, now.AddDate(0, 0, -1))
		state.State = domain.CardStateRelearning

		next := advance(state, domain.RatingEasy, now, params)

		assert.Equal(t, domain.CardStateReview, next.State)
	})

	t.Run("Hard stays in phase but adjusts difficulty", func(t *testing.T) {
		t.Parallel()
		state := newReviewState(t, 6.0, 2.0, now.AddDate(0, 0, -1))
		state.State = domain.CardStateRelearning

		next := advance(state, domain.RatingHard, now, params)

		assert.Equal(t, domain.CardStateRelearning, next.State)
		assert.Greater(t, next.Difficulty, state.Difficulty)
	})
}

func TestAdvanceBoundsHoldUnderExtremes(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	// Hammer one card with the same extreme rating many times; every
	// intermediate state must respect the model bounds.
	for _, rating := range []domain.ReviewRating{domain.RatingAgain, domain.RatingEasy} {
		state := newVirginState(t)
		current := state
		for i := 0; i < 50; i++ {
			current = advance(current, rating, now, params)

			require.GreaterOrEqual(t, current.Difficulty, 1.0)
			require.LessOrEqual(t, current.Difficulty, 10.0)
			require.GreaterOrEqual(t, current.Stability, 0.1)

			interval := int(current.NextReviewAt.Sub(now).Hours() / 24)
			require.GreaterOrEqual(t, interval, 1)
			require.LessOrEqual(t, interval, params.MaxIntervalDays)

			now = current.NextReviewAt
		}
	}
}

func TestAdvanceRepsAlwaysIncrement(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	current := newVirginState(t)
	for i := 1; i <= 10; i++ {
		rating := domain.ReviewRating(i%4 + 1)
		current = advance(current, rating, now, params)
		assert.Equal(t, i, current.Reps)
		now = now.AddDate(0, 0, 1)
	}
}

func TestAdvanceRepeatedSubmissionDiverges(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()
	state := newVirginState(t)

	once := advance(state, domain.RatingGood, now, params)
	twice := advance(once, domain.RatingGood, now, params)

	// The transition carries no deduplication: replaying the same rating at
	// the same instant still advances the model.
	assert.NotEqual(t, once.Reps, twice.Reps)
	assert.NotEqual(t, once.Stability, twice.Stability)
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()
	state := newReviewState(t, 5.0, 10.0, now.AddDate(0, 0, -10))
	before := *state

	_ = advance(state, domain.RatingAgain, now, params)

	assert.Equal(t, before, *state, "advance must not mutate its input")
}

func TestAdvanceFutureLastReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	// Clock skew can put the last review in the future; elapsed time floors
	// at zero so retrievability is 1.
	state := newReviewState(t, 5.0, 10.0, now.AddDate(0, 0, 3))

	next := advance(state, domain.RatingGood, now, params)

	assert.InDelta(t, 1.0, next.Retrievability, 1e-12)
}

func TestNextIntervalDaysRounding(t *testing.T) {
	t.Parallel()

	// At the default 0.9 target retention the interval is round(stability),
	// rounding half away from zero.
	params := NewDefaultParams()

	testCases := []struct {
		stability float64
		expect    int
	}{
		{stability: 0.3, expect: 1},  // clamped to the minimum
		{stability: 1.4, expect: 1},
		{stability: 1.5, expect: 2},  // half rounds away from zero
		{stability: 2.5, expect: 3},  // not banker's rounding
		{stability: 10.0, expect: 10},
		{stability: 1e9, expect: params.MaxIntervalDays},
	}

	for _, tc := range testCases {
		got := nextIntervalDays(tc.stability, params)
		assert.Equal(t, tc.expect, got, "stability %v", tc.stability)
	}
}

func TestNextIntervalDaysCustomRetention(t *testing.T) {
	t.Parallel()

	params, err := NewParams(nil, 0.8, 0)
	require.NoError(t, err)

	// Lower target retention stretches intervals beyond the stability value.
	expected := int(math.Round(10 * math.Log(0.8) / math.Log(0.9)))
	assert.Equal(t, expected, nextIntervalDays(10, params))
	assert.Greater(t, nextIntervalDays(10, params), 10)
}

func TestRetrievabilityCurve(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, retrievability(0, 10), 1e-12)
	assert.InDelta(t, 0.9, retrievability(10, 10), 1e-9)
	assert.Less(t, retrievability(30, 10), retrievability(10, 10))
	assert.InDelta(t, 1.0, retrievability(5, 0), 1e-12,
		"zero stability means no decay has been modeled yet")
}
