package fsrs

import (
	"errors"
	"time"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// Common errors
var (
	ErrNilState    = errors.New("card memory state cannot be nil")
	ErrInvalidDays = errors.New("postpone days must be at least 1")
	ErrNilParams   = errors.New("scheduler parameters cannot be nil")
)

// Service defines the interface for scheduler operations.
type Service interface {
	// AdvanceReview computes the post-review memory state for one rating.
	AdvanceReview(
		state *domain.CardMemoryState,
		rating domain.ReviewRating,
		now time.Time,
	) (*domain.CardMemoryState, error)

	// PostponeReview pushes the next review time forward by a number of
	// days without altering the memory model.
	PostponeReview(
		state *domain.CardMemoryState,
		days int,
		now time.Time,
	) (*domain.CardMemoryState, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduler service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduler service with custom parameters.
// Returns an error if the parameters are invalid.
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &defaultService{params: params}, nil
}

// AdvanceReview implements the Service interface.
func (s *defaultService) AdvanceReview(
	state *domain.CardMemoryState,
	rating domain.ReviewRating,
	now time.Time,
) (*domain.CardMemoryState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	if !rating.IsValid() {
		return nil, domain.ErrInvalidRating
	}

	return advance(state, rating, now, s.params), nil
}

// PostponeReview implements the Service interface.
func (s *defaultService) PostponeReview(
	state *domain.CardMemoryState,
	days int,
	now time.Time,
) (*domain.CardMemoryState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := *state
	next.NextReviewAt = state.NextReviewAt.AddDate(0, 0, days)
	next.UpdatedAt = now

	return &next, nil
}
