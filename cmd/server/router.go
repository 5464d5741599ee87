package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mnemo-app/mnemo-api/internal/api"
	apiMiddleware "github.com/mnemo-app/mnemo-api/internal/api/middleware"
	"github.com/mnemo-app/mnemo-api/internal/service/auth"
	"github.com/mnemo-app/mnemo-api/internal/service/review"
	"github.com/mnemo-app/mnemo-api/internal/service/study"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// routerDeps holds everything setupRouter needs to build the handler tree.
type routerDeps struct {
	userStore     store.UserStore
	jwtService    auth.JWTService
	hasher        auth.PasswordHasher
	reviewService review.ReviewService
	studyService  study.StudyService
	logger        *slog.Logger
}

// setupRouter creates and configures the application router with all routes
// and middleware.
func setupRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(deps.userStore, deps.jwtService, deps.hasher)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.jwtService)

	reviewHandler := api.NewReviewHandler(deps.reviewService, deps.logger)
	studyHandler := api.NewStudyHandler(deps.studyService, deps.logger)
	sessionHandler := api.NewSessionHandler(deps.studyService, deps.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Card review endpoints
			r.Post("/cards/{id}/review", reviewHandler.SubmitReview)
			r.Post("/cards/{id}/postpone", reviewHandler.PostponeReview)
			r.Get("/cards/{id}/state", reviewHandler.GetMemoryState)

			// Study queue endpoints
			r.Get("/decks/availability", studyHandler.GetDeckAvailability)
			r.Get("/decks/{id}/queue", studyHandler.GetQueue)

			// Study session endpoints
			r.Post("/sessions", sessionHandler.StartSession)
			r.Post("/sessions/{id}/end", sessionHandler.EndSession)
			r.Get("/sessions", sessionHandler.ListSessions)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			deps.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
