package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyforge/srs-api/internal/domain"
	"github.com/studyforge/srs-api/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface using a
// PostgreSQL database as the storage backend. The assembled item order is
// kept as a JSONB array so the session replays in exactly the order the
// scheduler produced.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface. If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// WithTx implements store.SessionStore.WithTx
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.SessionStore.Create
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	itemIDs, err := json.Marshal(session.ItemIDs)
	if err != nil {
		return fmt.Errorf("failed to encode session item order: %w", err)
	}

	query := `
		INSERT INTO study_sessions (
			id, course_id, session_type, item_ids,
			cards_reviewed, correct_count, total_response_ms,
			started_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.db.ExecContext(ctx, query,
		session.ID, session.CourseID, string(session.Type), itemIDs,
		session.CardsReviewed, session.CorrectCount, session.TotalResponseMs,
		session.StartedAt, session.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create study session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return mapError(err)
	}

	return nil
}

// GetByID implements store.SessionStore.GetByID
func (s *PostgresSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	query := `
		SELECT id, course_id, session_type, item_ids,
			cards_reviewed, correct_count, total_response_ms,
			started_at, updated_at
		FROM study_sessions WHERE id = $1`

	var session domain.StudySession
	var sessionType string
	var itemIDs []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.CourseID, &sessionType, &itemIDs,
		&session.CardsReviewed, &session.CorrectCount, &session.TotalResponseMs,
		&session.StartedAt, &session.UpdatedAt,
	)
	if err != nil {
		mapped := mapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrSessionNotFound
		}
		s.logger.Error("failed to get study session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, mapped
	}

	session.Type = domain.SessionType(sessionType)
	if err := json.Unmarshal(itemIDs, &session.ItemIDs); err != nil {
		return nil, fmt.Errorf("failed to decode session item order: %w", err)
	}

	return &session, nil
}

// UpdateCounters implements store.SessionStore.UpdateCounters
func (s *PostgresSessionStore) UpdateCounters(ctx context.Context, session *domain.StudySession) error {
	query := `
		UPDATE study_sessions
		SET cards_reviewed = $2, correct_count = $3, total_response_ms = $4, updated_at = $5
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		session.ID, session.CardsReviewed, session.CorrectCount,
		session.TotalResponseMs, session.UpdatedAt)
	if err != nil {
		s.logger.Error("failed to update session counters",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return store.ErrSessionNotFound
	}

	return nil
}
