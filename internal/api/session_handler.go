package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mnemo-app/mnemo-api/internal/api/shared"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/service/study"
)

// SessionHandler handles study session lifecycle HTTP requests.
type SessionHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(studyService study.StudyService, log *slog.Logger) *SessionHandler {
	if studyService == nil {
		panic("study service cannot be nil for SessionHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &SessionHandler{
		studyService: studyService,
		logger:       log.With(slog.String("component", "session_handler")),
	}
}

// StartSession handles POST /sessions requests.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	session, err := h.studyService.StartSession(r.Context(), userID, req.DeckID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to start session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("session started",
		slog.String("session_id", session.ID.String()),
		slog.String("deck_id", req.DeckID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// EndSession handles POST /sessions/{id}/end requests.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	sessionID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req EndSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	totals := domain.SessionTotals{
		CardsStudied:   req.CardsStudied,
		CorrectAnswers: req.CorrectAnswers,
		AverageRating:  req.AverageRating,
	}

	session, err := h.studyService.EndSession(r.Context(), userID, sessionID, totals, time.Now().UTC())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to end session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("session ended",
		slog.String("session_id", session.ID.String()),
		slog.Int("cards_studied", session.CardsStudied))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// ListSessions handles GET /sessions requests.
// An optional limit query parameter caps the number of sessions returned.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit value")
		return
	}

	sessions, err := h.studyService.ListSessions(r.Context(), userID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to list sessions", err)
		return
	}

	response := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, sessionToResponse(session))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
