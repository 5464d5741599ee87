package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT access token used for API authorization
	Token string `json:"token"`
}

// SubmitReviewRequest defines the payload for submitting a card review.
type SubmitReviewRequest struct {
	// Rating is the recall grade: 1=again, 2=hard, 3=good, 4=easy.
	Rating int `json:"rating" validate:"required,min=1,max=4"`

	// SessionID optionally attributes the review to a study session.
	SessionID *uuid.UUID `json:"session_id,omitempty"`
}

// PostponeReviewRequest defines the payload for postponing a card's next
// review.
type PostponeReviewRequest struct {
	Days int `json:"days" validate:"required,min=1"`
}

// MemoryStateResponse represents a card's scheduling state.
type MemoryStateResponse struct {
	CardID         string     `json:"card_id"`
	UserID         string     `json:"user_id"`
	Difficulty     float64    `json:"difficulty"`
	Stability      float64    `json:"stability"`
	Retrievability float64    `json:"retrievability"`
	Grade          int        `json:"grade"`
	Lapses         int        `json:"lapses"`
	Reps           int        `json:"reps"`
	State          string     `json:"state"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt   time.Time  `json:"next_review_at"`
}

// CardResponse represents a card in a study queue.
type CardResponse struct {
	ID       string      `json:"id"`
	DeckID   string      `json:"deck_id"`
	Content  interface{} `json:"content"`
	Position int         `json:"position"`
}

// QueueResponse represents the cards available to study right now.
type QueueResponse struct {
	Due []CardResponse `json:"due"`
	New []CardResponse `json:"new"`
}

// DeckAvailabilityResponse summarizes the study workload for one deck.
type DeckAvailabilityResponse struct {
	DeckID       string     `json:"deck_id"`
	Name         string     `json:"name"`
	NewCards     int        `json:"new_cards"`
	DueCards     int        `json:"due_cards"`
	NextReviewAt *time.Time `json:"next_review_at,omitempty"`
}

// StartSessionRequest defines the payload for starting a study session.
type StartSessionRequest struct {
	DeckID uuid.UUID `json:"deck_id" validate:"required"`
}

// EndSessionRequest defines the payload for ending a study session.
type EndSessionRequest struct {
	CardsStudied   int     `json:"cards_studied"   validate:"min=0"`
	CorrectAnswers int     `json:"correct_answers" validate:"min=0"`
	AverageRating  float64 `json:"average_rating"  validate:"min=0,max=4"`
}

// SessionResponse represents a study session.
type SessionResponse struct {
	ID             string     `json:"id"`
	DeckID         string     `json:"deck_id"`
	CardsStudied   int        `json:"cards_studied"`
	CorrectAnswers int        `json:"correct_answers"`
	AverageRating  float64    `json:"average_rating"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
}
