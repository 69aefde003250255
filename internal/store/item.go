package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/studyforge/srs-api/internal/domain"
)

// ItemStore defines the interface for learning item persistence.
type ItemStore interface {
	// Create saves a new learning item to the store.
	// Returns ErrInvalidEntity wrapping the domain validation error if the
	// item data is invalid, and ErrDuplicate if the ID already exists.
	Create(ctx context.Context, item *domain.LearningItem) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LearningItem, error)

	// GetByIDForUpdate retrieves an item and locks its row for the
	// duration of the surrounding transaction. Reviews of the same item
	// must be applied in order; the row lock serializes them. Calling
	// this outside a transaction degenerates to a plain read.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.LearningItem, error)

	// UpdateContent modifies an item's content fields (question, answer,
	// difficulty) without touching its scheduling state.
	// Returns ErrItemNotFound if the item does not exist.
	UpdateContent(ctx context.Context, item *domain.LearningItem) error

	// UpdateSchedule writes back an item's scheduling fields after a
	// review or postpone. Content fields are not written.
	// Returns ErrItemNotFound if the item does not exist.
	UpdateSchedule(ctx context.Context, item *domain.LearningItem) error

	// Delete removes an item from the store by its ID.
	// Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListDue returns the course's items that are due at the given moment:
	// next_review_at has passed, or the item has never been reviewed.
	// Never-reviewed items sort first, then ascending next_review_at
	// (most overdue first). limit <= 0 means no limit.
	ListDue(ctx context.Context, courseID uuid.UUID, now time.Time, limit int) ([]*domain.LearningItem, error)

	// ListNew returns the course's never-reviewed items in creation order,
	// truncated to limit (limit <= 0 means no limit).
	ListNew(ctx context.Context, courseID uuid.UUID, limit int) ([]*domain.LearningItem, error)

	// WithTx returns a new ItemStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) ItemStore
}
