package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	ErrDeckIDEmpty     = errors.New("deck ID cannot be empty")
	ErrDeckUserIDEmpty = errors.New("deck user ID cannot be empty")
	ErrDeckNameEmpty   = errors.New("deck name cannot be empty")
)

// Deck is a named collection of cards owned by one learner.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckAvailability summarizes the study workload a deck holds for a learner:
// how many cards are new, how many are due now, and when the next not-yet-due
// card becomes available.
type DeckAvailability struct {
	DeckID       uuid.UUID  `json:"deck_id"`
	Name         string     `json:"name"`
	NewCards     int        `json:"new_cards"`
	DueCards     int        `json:"due_cards"`
	NextReviewAt *time.Time `json:"next_review_at,omitempty"` // earliest future due time, nil when nothing is scheduled
}

// NewDeck creates a new Deck owned by the given user.
// Returns an error if validation fails.
func NewDeck(userID uuid.UUID, name, description string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}

	if d.Name == "" {
		return ErrDeckNameEmpty
	}

	return nil
}
