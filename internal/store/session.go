package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/studyforge/srs-api/internal/domain"
)

// SessionStore defines the interface for study session persistence.
type SessionStore interface {
	// Create saves a new study session, including its assembled item
	// order.
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// UpdateCounters writes back a session's running statistics after a
	// review has been recorded against it.
	// Returns ErrSessionNotFound if the session does not exist.
	UpdateCounters(ctx context.Context, session *domain.StudySession) error

	// WithTx returns a new SessionStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) SessionStore
}
