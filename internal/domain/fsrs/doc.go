// Package fsrs implements the FSRS spaced-repetition scheduling algorithm:
// a per-card memory model of difficulty, stability, and retrievability, and
// a rating-driven state machine that computes the next review date.
//
// The scheduler core is a pure function of (state, rating, now) and an
// immutable parameter set; it performs no I/O and never fails for a valid
// rating. Persistence of its results is the review service's concern.
package fsrs
