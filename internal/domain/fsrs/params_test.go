package fsrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	require.NotNil(t, params)
	assert.Equal(t, DefaultWeights, params.W)
	assert.Equal(t, DefaultTargetRetention, params.TargetRetention)
	assert.Equal(t, DefaultMaxIntervalDays, params.MaxIntervalDays)
	assert.NoError(t, params.Validate())
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	t.Run("nil weights select defaults", func(t *testing.T) {
		t.Parallel()
		params, err := NewParams(nil, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultWeights, params.W)
		assert.Equal(t, DefaultTargetRetention, params.TargetRetention)
		assert.Equal(t, DefaultMaxIntervalDays, params.MaxIntervalDays)
	})

	t.Run("custom values are kept", func(t *testing.T) {
		t.Parallel()
		weights := make([]float64, WeightCount)
		copy(weights, DefaultWeights[:])
		weights[0] = 0.5

		params, err := NewParams(weights, 0.85, 1000)
		require.NoError(t, err)
		assert.Equal(t, 0.5, params.W[0])
		assert.Equal(t, 0.85, params.TargetRetention)
		assert.Equal(t, 1000, params.MaxIntervalDays)
	})

	t.Run("wrong weight count is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewParams(make([]float64, 17), 0, 0)
		assert.ErrorIs(t, err, ErrWrongWeightCount)

		_, err = NewParams(make([]float64, 20), 0, 0)
		assert.ErrorIs(t, err, ErrWrongWeightCount)
	})

	t.Run("retention outside (0,1) is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewParams(nil, 1.0, 0)
		assert.ErrorIs(t, err, ErrInvalidRetention)

		_, err = NewParams(nil, -0.1, 0)
		assert.ErrorIs(t, err, ErrInvalidRetention)
	})

	t.Run("negative max interval is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewParams(nil, 0, -1)
		assert.ErrorIs(t, err, ErrInvalidMaxInterval)
	})

	t.Run("non-positive seed weights are rejected", func(t *testing.T) {
		t.Parallel()
		weights := make([]float64, WeightCount)
		copy(weights, DefaultWeights[:])
		weights[2] = 0

		_, err := NewParams(weights, 0, 0)
		assert.ErrorIs(t, err, ErrNonPositiveWeight)
	})
}
