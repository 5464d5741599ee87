package fsrs

import (
	"math"
	"time"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// decayBase calibrates the forgetting curve so that retrievability is 0.9
// when elapsed time equals stability. All interval math shares it.
var decayBase = math.Log(0.9)

// minStability is the floor applied to every computed stability. It also
// guarantees the formulas stay total: no division by zero, no log of a
// non-positive number.
const minStability = 0.1

// clampDifficulty bounds difficulty to its [1, 10] scale.
func clampDifficulty(d float64) float64 {
	return math.Min(10, math.Max(1, d))
}

// clampStability applies the global stability floor.
func clampStability(s float64) float64 {
	return math.Max(minStability, s)
}

// retrievability is the estimated recall probability after elapsedDays given
// the card's stability: exp(ln 0.9 * t / S). A card that has never been
// reviewed has not decayed, so its retrievability is 1.
func retrievability(elapsedDays, stability float64) float64 {
	if stability <= 0 {
		return 1
	}
	return math.Exp(decayBase * elapsedDays / stability)
}

// initialDifficulty seeds difficulty from the very first rating.
func initialDifficulty(w *Weights, rating domain.ReviewRating) float64 {
	return clampDifficulty(w[4] - math.Exp(w[5]*float64(rating-1)) + 1)
}

// initialStability seeds stability from the very first rating; ratings 1-4
// index directly into the first four weights.
func initialStability(w *Weights, rating domain.ReviewRating) float64 {
	return clampStability(w[rating-1])
}

// nextDifficulty nudges difficulty after a review: ratings below Good make
// the card harder, ratings above make it easier.
func nextDifficulty(w *Weights, d float64, rating domain.ReviewRating) float64 {
	return clampDifficulty(d - w[6]*float64(rating-3))
}

// shortTermStability grows (or shrinks) stability for cards still in a
// learning or relearning phase, where intervals are too short for the
// long-term forgetting curve to apply.
func shortTermStability(w *Weights, s float64, rating domain.ReviewRating) float64 {
	return s * math.Exp(w[17]*(float64(rating-3)+w[18]))
}

// forgettingStability computes the post-lapse stability of a review-phase
// card that was rated Again.
func forgettingStability(w *Weights, d, s, r float64) float64 {
	return w[11] *
		math.Pow(d, -w[12]) *
		(math.Pow(s+1, w[13]) - 1) *
		math.Exp(w[14]*(1-r))
}

// nextRecallStability computes the new stability of a review-phase card that
// was successfully recalled. Lower retrievability at review time (a harder,
// better-timed recall) yields a larger stability gain.
func nextRecallStability(w *Weights, d, s, r float64, rating domain.ReviewRating) float64 {
	hardPenalty := 1.0
	if rating == domain.RatingHard {
		hardPenalty = w[15]
	}

	easyBonus := 1.0
	if rating == domain.RatingEasy {
		easyBonus = w[16]
	}

	return s * (math.Exp(w[8])*
		(11-d)*
		math.Pow(s, -w[9])*
		(math.Exp(w[10]*(1-r))-1)*
		hardPenalty*
		easyBonus + 1)
}

// nextIntervalDays converts stability into a concrete interval calibrated to
// the target retention. Rounding is half-away-from-zero; the result is
// clamped to [1, MaxIntervalDays].
func nextIntervalDays(stability float64, p *Params) int {
	interval := int(math.Round(stability * math.Log(p.TargetRetention) / decayBase))
	if interval < 1 {
		return 1
	}
	if interval > p.MaxIntervalDays {
		return p.MaxIntervalDays
	}
	return interval
}

// advance computes the full post-review memory state for one rating applied
// at the given time. It is deterministic, side-effect free, and total: for
// any valid state/rating/time combination it returns a usable state, never
// an error.
//
// The input state is not modified; a new value is returned following the
// immutable-update pattern.
func advance(
	state *domain.CardMemoryState,
	rating domain.ReviewRating,
	now time.Time,
	p *Params,
) *domain.CardMemoryState {
	next := *state

	r := 1.0
	if !state.IsNew() {
		elapsedDays := now.Sub(state.LastReviewedAt).Hours() / 24
		if elapsedDays < 0 {
			elapsedDays = 0
		}
		r = retrievability(elapsedDays, state.Stability)
	}

	switch {
	case state.IsNew():
		next.Difficulty = initialDifficulty(&p.W, rating)
		next.Stability = initialStability(&p.W, rating)
		if rating == domain.RatingEasy {
			next.State = domain.CardStateReview
		} else {
			next.State = domain.CardStateLearning
		}

	case state.State == domain.CardStateLearning || state.State == domain.CardStateRelearning:
		next.Stability = shortTermStability(&p.W, state.Stability, rating)
		switch rating {
		case domain.RatingAgain:
			// Difficulty unchanged; the card stays in its current
			// learning or relearning phase.
		case domain.RatingHard:
			next.Difficulty = nextDifficulty(&p.W, state.Difficulty, rating)
		default: // Good or Easy graduates the card
			next.Difficulty = nextDifficulty(&p.W, state.Difficulty, rating)
			next.State = domain.CardStateReview
		}

	default: // review phase
		if rating == domain.RatingAgain {
			next.State = domain.CardStateRelearning
			next.Lapses = state.Lapses + 1
			next.Stability = forgettingStability(&p.W, state.Difficulty, state.Stability, r)
		} else {
			next.Difficulty = nextDifficulty(&p.W, state.Difficulty, rating)
			next.Stability = nextRecallStability(&p.W, state.Difficulty, state.Stability, r, rating)
		}
	}

	next.Difficulty = clampDifficulty(next.Difficulty)
	next.Stability = clampStability(next.Stability)

	interval := nextIntervalDays(next.Stability, p)
	next.NextReviewAt = now.AddDate(0, 0, interval)
	next.LastReviewedAt = now
	next.Retrievability = r
	next.Grade = rating
	next.Reps = state.Reps + 1
	next.UpdatedAt = now

	return &next
}
