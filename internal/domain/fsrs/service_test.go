package fsrs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

func TestNewDefaultService(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	require.NotNil(t, service)

	impl, ok := service.(*defaultService)
	require.True(t, ok, "Expected *defaultService type")
	require.NotNil(t, impl.params)
}

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel()

	t.Run("valid params", func(t *testing.T) {
		t.Parallel()
		service, err := NewServiceWithParams(NewDefaultParams())
		require.NoError(t, err)
		assert.NotNil(t, service)
	})

	t.Run("nil params", func(t *testing.T) {
		t.Parallel()
		_, err := NewServiceWithParams(nil)
		assert.ErrorIs(t, err, ErrNilParams)
	})

	t.Run("invalid params", func(t *testing.T) {
		t.Parallel()
		params := NewDefaultParams()
		params.TargetRetention = 2
		_, err := NewServiceWithParams(params)
		assert.ErrorIs(t, err, ErrInvalidRetention)
	})
}

func TestServiceAdvanceReview(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	t.Run("advances a valid state", func(t *testing.T) {
		t.Parallel()
		state, err := domain.NewCardMemoryState(uuid.New(), uuid.New())
		require.NoError(t, err)

		next, err := service.AdvanceReview(state, domain.RatingGood, now)
		require.NoError(t, err)
		assert.Equal(t, 1, next.Reps)
		assert.Equal(t, domain.RatingGood, next.Grade)
	})

	t.Run("nil state", func(t *testing.T) {
		t.Parallel()
		_, err := service.AdvanceReview(nil, domain.RatingGood, now)
		assert.ErrorIs(t, err, ErrNilState)
	})

	t.Run("invalid rating", func(t *testing.T) {
		t.Parallel()
		state, err := domain.NewCardMemoryState(uuid.New(), uuid.New())
		require.NoError(t, err)

		_, err = service.AdvanceReview(state, domain.ReviewRating(0), now)
		assert.ErrorIs(t, err, domain.ErrInvalidRating)

		_, err = service.AdvanceReview(state, domain.ReviewRating(5), now)
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	})
}

func TestServicePostponeReview(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	t.Run("shifts only the due date", func(t *testing.T) {
		t.Parallel()
		state, err := domain.NewCardMemoryState(uuid.New(), uuid.New())
		require.NoError(t, err)

		reviewed, err := service.AdvanceReview(state, domain.RatingGood, now)
		require.NoError(t, err)

		postponed, err := service.PostponeReview(reviewed, 7, now)
		require.NoError(t, err)

		assert.Equal(t, reviewed.NextReviewAt.AddDate(0, 0, 7), postponed.NextReviewAt)
		assert.Equal(t, reviewed.Difficulty, postponed.Difficulty)
		assert.Equal(t, reviewed.Stability, postponed.Stability)
		assert.Equal(t, reviewed.Reps, postponed.Reps)
		assert.Equal(t, reviewed.Lapses, postponed.Lapses)
		assert.Equal(t, reviewed.State, postponed.State)
		assert.Equal(t, reviewed.LastReviewedAt, postponed.LastReviewedAt,
			"postponing is not a review")
	})

	t.Run("nil state", func(t *testing.T) {
		t.Parallel()
		_, err := service.PostponeReview(nil, 7, now)
		assert.ErrorIs(t, err, ErrNilState)
	})

	t.Run("non-positive days", func(t *testing.T) {
		t.Parallel()
		state, err := domain.NewCardMemoryState(uuid.New(), uuid.New())
		require.NoError(t, err)

		_, err = service.PostponeReview(state, 0, now)
		assert.ErrorIs(t, err, ErrInvalidDays)

		_, err = service.PostponeReview(state, -3, now)
		assert.ErrorIs(t, err, ErrInvalidDays)
	})
}
