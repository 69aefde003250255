package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/studyforge/srs-api/internal/config"
	"github.com/studyforge/srs-api/internal/domain/srs"
	"github.com/studyforge/srs-api/internal/platform/postgres"
	"github.com/studyforge/srs-api/internal/service"
	"github.com/studyforge/srs-api/internal/service/review"
	"github.com/studyforge/srs-api/internal/service/study"
	"github.com/studyforge/srs-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	itemStore    store.ItemStore
	sessionStore store.SessionStore

	// Services
	srsService    srs.Service
	itemService   service.ItemService
	reviewService review.Service
	studyService  study.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. Core dependencies (configuration, logger, database) must be
// established before application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.itemStore = postgres.NewPostgresItemStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)

	// Initialize the scheduler with configured parameters; zero config
	// values keep the algorithm defaults.
	app.srsService = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:         cfg.Scheduler.MinEaseFactor,
		MaxEaseFactor:         cfg.Scheduler.MaxEaseFactor,
		SuccessEaseBonus:      cfg.Scheduler.SuccessEaseBonus,
		FailureEasePenalty:    cfg.Scheduler.FailureEasePenalty,
		FailureIntervalFactor: cfg.Scheduler.FailureIntervalFactor,
		RelearnIntervalDays:   cfg.Scheduler.RelearnIntervalDays,
	}))

	// Initialize services
	var err error
	app.itemService, err = service.NewItemService(db, app.itemStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create item service: %w", err)
	}

	app.reviewService = review.NewService(db, app.itemStore, app.sessionStore, app.srsService, logger)
	app.studyService = study.NewService(db, app.itemStore, app.sessionStore, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
