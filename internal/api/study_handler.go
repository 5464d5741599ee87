package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mnemo-app/mnemo-api/internal/api/shared"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/service/study"
)

// StudyHandler handles deck availability and study queue HTTP requests.
type StudyHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService study.StudyService, log *slog.Logger) *StudyHandler {
	if studyService == nil {
		panic("study service cannot be nil for StudyHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       log.With(slog.String("component", "study_handler")),
	}
}

// GetDeckAvailability handles GET /decks/availability requests.
// It returns per-deck counts of new and due cards for the authenticated
// user.
func (h *StudyHandler) GetDeckAvailability(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	availability, err := h.studyService.GetDeckAvailability(r.Context(), userID, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to get deck availability", err)
		return
	}

	response := make([]DeckAvailabilityResponse, 0, len(availability))
	for _, a := range availability {
		response = append(response, DeckAvailabilityResponse{
			DeckID:       a.DeckID.String(),
			Name:         a.Name,
			NewCards:     a.NewCards,
			DueCards:     a.DueCards,
			NextReviewAt: a.NextReviewAt,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetQueue handles GET /decks/{id}/queue requests.
// Optional query parameters due_limit and new_limit cap each half of the
// queue; zero or absent means unlimited.
func (h *StudyHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	deckID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID format")
		return
	}

	dueLimit, err := queryInt(r, "due_limit")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid due_limit value")
		return
	}
	newLimit, err := queryInt(r, "new_limit")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid new_limit value")
		return
	}

	queue, err := h.studyService.GetQueue(r.Context(), userID, deckID, time.Now().UTC(), dueLimit, newLimit)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to build study queue"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QueueResponse{
		Due: cardsToResponse(queue.Due),
		New: cardsToResponse(queue.New),
	})
}

// queryInt parses an optional non-negative integer query parameter.
// A missing parameter yields zero.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// cardsToResponse converts domain cards to their API shape.
func cardsToResponse(cards []*domain.Card) []CardResponse {
	response := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		var content interface{}
		if err := json.Unmarshal(card.Content, &content); err != nil {
			content = string(card.Content)
		}
		response = append(response, CardResponse{
			ID:       card.ID.String(),
			DeckID:   card.DeckID.String(),
			Content:  content,
			Position: card.Position,
		})
	}
	return response
}

// sessionToResponse converts a domain.StudySession to its API shape.
func sessionToResponse(session *domain.StudySession) SessionResponse {
	return SessionResponse{
		ID:             session.ID.String(),
		DeckID:         session.DeckID.String(),
		CardsStudied:   session.CardsStudied,
		CorrectAnswers: session.CorrectAnswers,
		AverageRating:  session.AverageRating,
		StartedAt:      session.StartedAt,
		EndedAt:        session.EndedAt,
	}
}
