package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for StudySession
var (
	ErrEmptySessionUserID   = errors.New("study session user ID cannot be empty")
	ErrEmptySessionDeckID   = errors.New("study session deck ID cannot be empty")
	ErrNegativeSessionCount = errors.New("session counters cannot be negative")
	ErrSessionAlreadyEnded  = errors.New("study session has already ended")
	ErrInvalidAverageRating = errors.New("average rating must be within [0, 4]")
)

// StudySession records one study run over a deck. Counters start at zero and
// are overwritten wholesale exactly once when the session ends; the client
// submits final totals, the server never increments them field by field.
type StudySession struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	DeckID         uuid.UUID  `json:"deck_id"`
	CardsStudied   int        `json:"cards_studied"`
	CorrectAnswers int        `json:"correct_answers"`
	AverageRating  float64    `json:"average_rating"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"` // nil while the session is running
}

// SessionTotals are the final counters a client submits when ending a
// session. "Correct" means the card was rated Good or Easy.
type SessionTotals struct {
	CardsStudied   int
	CorrectAnswers int
	AverageRating  float64
}

// Validate checks the totals a client submitted at end of session.
func (t SessionTotals) Validate() error {
	if t.CardsStudied < 0 || t.CorrectAnswers < 0 {
		return ErrNegativeSessionCount
	}

	if t.AverageRating < 0 || t.AverageRating > 4 {
		return ErrInvalidAverageRating
	}

	return nil
}

// NewStudySession creates a running session for a learner and deck with all
// counters at zero.
func NewStudySession(userID, deckID uuid.UUID) (*StudySession, error) {
	session := &StudySession{
		ID:        uuid.New(),
		UserID:    userID,
		DeckID:    deckID,
		StartedAt: time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
// Returns an error if any field fails validation.
func (s *StudySession) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}

	if s.DeckID == uuid.Nil {
		return ErrEmptySessionDeckID
	}

	if s.CardsStudied < 0 || s.CorrectAnswers < 0 {
		return ErrNegativeSessionCount
	}

	return nil
}

// End applies the client-submitted totals and stamps the end time.
// Returns ErrSessionAlreadyEnded if the session was ended before; the row is
// read-only after its single end-of-session write.
func (s *StudySession) End(totals SessionTotals, now time.Time) error {
	if s.EndedAt != nil {
		return ErrSessionAlreadyEnded
	}

	if err := totals.Validate(); err != nil {
		return err
	}

	s.CardsStudied = totals.CardsStudied
	s.CorrectAnswers = totals.CorrectAnswers
	s.AverageRating = totals.AverageRating
	s.EndedAt = &now

	return nil
}
