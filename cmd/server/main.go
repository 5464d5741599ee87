// Package main implements the entry point for the mnemo API server,
// which schedules spaced repetition reviews for users' flashcards.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mnemo-app/mnemo-api/internal/config"
	"github.com/mnemo-app/mnemo-api/internal/domain/fsrs"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/platform/postgres"
	"github.com/mnemo-app/mnemo-api/internal/service/auth"
	"github.com/mnemo-app/mnemo-api/internal/service/review"
	"github.com/mnemo-app/mnemo-api/internal/service/study"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run initializes configuration, logging, the database, and all services,
// then serves HTTP until interrupted.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := openDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if err := runMigrations(db, appLogger); err != nil {
		return err
	}

	// Stores
	userStore := postgres.NewPostgresUserStore(db, appLogger)
	deckStore := postgres.NewPostgresDeckStore(db, appLogger)
	cardStore := postgres.NewPostgresCardStore(db, appLogger)
	stateStore := postgres.NewPostgresMemoryStateStore(db, appLogger)
	eventStore := postgres.NewPostgresReviewEventStore(db, appLogger)
	sessionStore := postgres.NewPostgresStudySessionStore(db, appLogger)

	// Scheduler
	params, err := fsrs.NewParams(
		cfg.Scheduler.Weights,
		cfg.Scheduler.TargetRetention,
		cfg.Scheduler.MaxIntervalDays,
	)
	if err != nil {
		return fmt.Errorf("invalid scheduler configuration: %w", err)
	}
	scheduler, err := fsrs.NewServiceWithParams(params)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	// Services
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher(0)

	reviewService := review.NewReviewService(
		db,
		cardStore,
		deckStore,
		stateStore,
		eventStore,
		sessionStore,
		scheduler,
		appLogger,
	)
	studyService := study.NewStudyService(cardStore, deckStore, sessionStore, appLogger)

	router := setupRouter(routerDeps{
		userStore:     userStore,
		jwtService:    jwtService,
		hasher:        hasher,
		reviewService: reviewService,
		studyService:  studyService,
		logger:        appLogger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		appLogger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	appLogger.Info("server stopped")
	return nil
}
