package fsrs

import (
	"errors"
	"fmt"
)

// WeightCount is the size of the FSRS weight vector. Indices 0-16 drive the
// long-term formulas; 17 and 18 drive short-term (learning/relearning)
// stability, so the full configuration array is 19 elements long.
const WeightCount = 19

// Default scheduling limits.
const (
	// DefaultTargetRetention is the recall probability the scheduler aims
	// for when converting stability into a concrete interval.
	DefaultTargetRetention = 0.9

	// DefaultMaxIntervalDays caps how far out a review can be scheduled
	// (roughly one hundred years).
	DefaultMaxIntervalDays = 36500
)

// Parameter validation errors
var (
	ErrWrongWeightCount   = errors.New("weight vector must have exactly 19 elements")
	ErrInvalidRetention   = errors.New("target retention must be within (0, 1)")
	ErrInvalidMaxInterval = errors.New("maximum interval must be at least 1 day")
	ErrNonPositiveWeight  = errors.New("initial stability weights must be positive")
)

// Weights is the FSRS weight vector, 0-indexed. The first four entries are
// the initial stabilities for ratings 1-4.
type Weights [WeightCount]float64

// DefaultWeights are the published FSRS-5 default parameters, fitted over a
// large corpus of real review logs. Deployments may override them per
// learner population via configuration.
var DefaultWeights = Weights{
	0.40255, 1.18385, 3.173, 15.69105, 7.1949, 0.5345, 1.4604, 0.0046,
	1.54575, 0.1192, 1.01925, 1.9395, 0.11, 0.29605, 2.2698, 0.2315,
	2.9898, 0.51655, 0.6621,
}

// Params defines all configurable parameters for the FSRS scheduler.
// A Params value is immutable after construction and shared freely across
// goroutines.
type Params struct {
	// W is the 19-element weight vector.
	W Weights

	// TargetRetention is the recall probability intervals are calibrated to.
	TargetRetention float64

	// MaxIntervalDays caps the computed interval.
	MaxIntervalDays int
}

// NewDefaultParams creates a Params instance with the published default
// weights, 0.9 target retention, and the 100-year interval cap.
func NewDefaultParams() *Params {
	return &Params{
		W:               DefaultWeights,
		TargetRetention: DefaultTargetRetention,
		MaxIntervalDays: DefaultMaxIntervalDays,
	}
}

// NewParams creates a Params instance from an explicit weight slice and
// limits, validating the result. Zero-valued retention or interval fall back
// to the defaults so configuration may specify weights alone.
func NewParams(weights []float64, targetRetention float64, maxIntervalDays int) (*Params, error) {
	p := NewDefaultParams()

	if weights != nil {
		if len(weights) != WeightCount {
			return nil, fmt.Errorf("%w: got %d", ErrWrongWeightCount, len(weights))
		}
		copy(p.W[:], weights)
	}

	if targetRetention != 0 {
		p.TargetRetention = targetRetention
	}

	if maxIntervalDays != 0 {
		p.MaxIntervalDays = maxIntervalDays
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks the parameter set for values the formulas cannot handle.
func (p *Params) Validate() error {
	if p.TargetRetention <= 0 || p.TargetRetention >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidRetention, p.TargetRetention)
	}

	if p.MaxIntervalDays < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxInterval, p.MaxIntervalDays)
	}

	// The first four weights seed initial stability and must stay positive;
	// the stability floor covers everything else.
	for i := 0; i < 4; i++ {
		if p.W[i] <= 0 {
			return fmt.Errorf("%w: w[%d] = %v", ErrNonPositiveWeight, i, p.W[i])
		}
	}

	return nil
}
