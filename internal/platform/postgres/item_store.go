package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/studyforge/srs-api/internal/domain"
	"github.com/studyforge/srs-api/internal/store"
)

// itemColumns is the canonical column list shared by every SELECT in this
// store, in scanItem order.
const itemColumns = `id, course_id, question, answer, difficulty,
	ease_factor, interval_days, repetitions, last_reviewed_at, next_review_at,
	review_count, total_quality, created_at, updated_at`

// PostgresItemStore implements the store.ItemStore interface using a
// PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the
// ItemStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// WithTx implements store.ItemStore.WithTx
func (s *PostgresItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ItemStore.Create
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.LearningItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO learning_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.CourseID, item.Question, item.Answer, item.Difficulty,
		item.EaseFactor, item.IntervalDays, item.Repetitions,
		nullableTime(item.LastReviewedAt), item.NextReviewAt,
		item.ReviewCount, item.TotalQuality, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create learning item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return mapError(err)
	}

	return nil
}

// GetByID implements store.ItemStore.GetByID
func (s *PostgresItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.LearningItem, error) {
	query := `SELECT ` + itemColumns + ` FROM learning_items WHERE id = $1`
	return s.getItem(ctx, query, id)
}

// GetByIDForUpdate implements store.ItemStore.GetByIDForUpdate.
// The row lock serializes concurrent reviews of the same item so schedule
// updates are applied in review order.
func (s *PostgresItemStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.LearningItem, error) {
	query := `SELECT ` + itemColumns + ` FROM learning_items WHERE id = $1 FOR UPDATE`
	return s.getItem(ctx, query, id)
}

func (s *PostgresItemStore) getItem(ctx context.Context, query string, id uuid.UUID) (*domain.LearningItem, error) {
	row := s.db.QueryRowContext(ctx, query, id)
	item, err := scanItem(row)
	if err != nil {
		mapped := mapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrItemNotFound
		}
		s.logger.Error("failed to get learning item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, mapped
	}
	return item, nil
}

// UpdateContent implements store.ItemStore.UpdateContent.
// Only the author-owned fields are written; scheduling state is untouched.
func (s *PostgresItemStore) UpdateContent(ctx context.Context, item *domain.LearningItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE learning_items
		SET question = $2, answer = $3, difficulty = $4, updated_at = $5
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		item.ID, item.Question, item.Answer, item.Difficulty, item.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	return s.requireRow(result, item.ID)
}

// UpdateSchedule implements store.ItemStore.UpdateSchedule.
// Only scheduling fields and cumulative statistics are written.
func (s *PostgresItemStore) UpdateSchedule(ctx context.Context, item *domain.LearningItem) error {
	if err := item.ValidateSchedule(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE learning_items
		SET ease_factor = $2, interval_days = $3, repetitions = $4,
			last_reviewed_at = $5, next_review_at = $6,
			review_count = $7, total_quality = $8, updated_at = $9
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		item.ID, item.EaseFactor, item.IntervalDays, item.Repetitions,
		nullableTime(item.LastReviewedAt), item.NextReviewAt,
		item.ReviewCount, item.TotalQuality, item.UpdatedAt)
	if err != nil {
		s.logger.Error("failed to update item schedule",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return mapError(err)
	}

	return s.requireRow(result, item.ID)
}

// Delete implements store.ItemStore.Delete
func (s *PostgresItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM learning_items WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	return s.requireRow(result, id)
}

// ListDue implements store.ItemStore.ListDue
func (s *PostgresItemStore) ListDue(
	ctx context.Context,
	courseID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.LearningItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM learning_items
		WHERE course_id = $1
			AND (last_reviewed_at IS NULL OR next_review_at <= $2)
		ORDER BY (last_reviewed_at IS NULL) DESC, next_review_at ASC`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}

	rows, err := s.db.QueryContext(ctx, query, courseID, now)
	if err != nil {
		s.logger.Error("failed to list due items",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectItems(rows)
}

// ListNew implements store.ItemStore.ListNew
func (s *PostgresItemStore) ListNew(
	ctx context.Context,
	courseID uuid.UUID,
	limit int,
) ([]*domain.LearningItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM learning_items
		WHERE course_id = $1 AND last_reviewed_at IS NULL
		ORDER BY created_at ASC`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}

	rows, err := s.db.QueryContext(ctx, query, courseID)
	if err != nil {
		s.logger.Error("failed to list new items",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectItems(rows)
}

// requireRow converts a zero-rows-affected result into ErrItemNotFound.
func (s *PostgresItemStore) requireRow(result sql.Result, id uuid.UUID) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		s.logger.Debug("learning item not found",
			slog.String("item_id", id.String()))
		return store.ErrItemNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one learning item from a row in itemColumns order.
func scanItem(row rowScanner) (*domain.LearningItem, error) {
	var item domain.LearningItem
	var lastReviewed sql.NullTime

	err := row.Scan(
		&item.ID, &item.CourseID, &item.Question, &item.Answer, &item.Difficulty,
		&item.EaseFactor, &item.IntervalDays, &item.Repetitions,
		&lastReviewed, &item.NextReviewAt,
		&item.ReviewCount, &item.TotalQuality, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewed.Valid {
		item.LastReviewedAt = lastReviewed.Time
	}

	return &item, nil
}

func collectItems(rows *sql.Rows) ([]*domain.LearningItem, error) {
	var items []*domain.LearningItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, mapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

// nullableTime maps the zero time to SQL NULL so "never reviewed" survives
// the round trip through the database.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
