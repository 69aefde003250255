// Package main implements the entry point for the SRS API server, which
// schedules spaced repetition reviews for learning items and assembles study
// sessions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/studyforge/srs-api/internal/config"
	"github.com/studyforge/srs-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) instead of starting the server")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("srs-api: %v", err)
	}
}

// run loads configuration, wires dependencies, and either executes a
// migration command or starts the HTTP server.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if migrateCmd != "" {
		return runMigrations(cfg, migrateCmd)
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		// The application owns db cleanup only once constructed.
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
