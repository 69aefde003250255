package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/studyforge/srs-api/internal/config"
)

// migrationsDir is the path to the goose migration files, relative to the
// working directory the server is launched from.
const migrationsDir = "migrations"

// migrationTableName is the table goose uses to track applied migrations.
const migrationTableName = "schema_migrations"

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf forwards to slog.Error without calling os.Exit, so main handles
// application exit consistently.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes the given goose command (up, down, status) against
// the configured database.
func runMigrations(cfg *config.Config, command string) error {
	log := slog.Default().With(
		slog.String("component", "migrations"),
		slog.String("command", command))

	start := time.Now()
	log.Info("Starting migration operation")

	goose.SetLogger(&slogGooseLogger{})
	goose.SetTableName(migrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
		}
	}()

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q (expected up, down, or status)", command)
	}

	if err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	log.Info("Migration operation completed",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
