package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyforge/srs-api/internal/domain"
	"github.com/studyforge/srs-api/internal/domain/srs"
	"github.com/studyforge/srs-api/internal/platform/logger"
	"github.com/studyforge/srs-api/internal/store"
)

// Service provides operations for reviewing learning items using the
// spaced repetition scheduler.
type Service interface {
	// SubmitReview applies a completed review to its item: the scheduler
	// computes the next schedule from the quality grade and the result is
	// persisted. When the event carries a session ID the session counters
	// are updated in the same transaction.
	//
	// The item's prior state is left untouched on any failure; in
	// particular an invalid quality grade (domain.ErrInvalidQuality)
	// never reaches storage.
	SubmitReview(ctx context.Context, event domain.ReviewEvent) (*domain.LearningItem, error)

	// GetNextItem retrieves the most overdue item in the course, or
	// ErrNoItemsDue when nothing is due.
	GetNextItem(ctx context.Context, courseID uuid.UUID) (*domain.LearningItem, error)

	// PostponeItem pushes an item's next review forward by days.
	PostponeItem(ctx context.Context, itemID uuid.UUID, days int) (*domain.LearningItem, error)
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	items     store.ItemStore
	sessions  store.SessionStore
	scheduler srs.Service
	logger    *slog.Logger

	// runTx executes fn within a storage transaction. Tests substitute a
	// runner that calls fn directly.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewService creates a new review Service implementation.
func NewService(
	db *sql.DB,
	items store.ItemStore,
	sessions store.SessionStore,
	scheduler srs.Service,
	log *slog.Logger,
) Service {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if items == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("items cannot be nil")
	}
	if sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessions cannot be nil")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		items:     items,
		sessions:  sessions,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "review_service")),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// SubmitReview implements Service.SubmitReview.
func (s *serviceImpl) SubmitReview(
	ctx context.Context,
	event domain.ReviewEvent,
) (*domain.LearningItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review",
		slog.String("item_id", event.ItemID.String()),
		slog.Int("quality", int(event.Quality)))

	// Reject bad input before opening a transaction. The quality grade in
	// particular must surface domain.ErrInvalidQuality, never be clamped.
	if err := event.Validate(); err != nil {
		log.Warn("invalid review event",
			slog.String("item_id", event.ItemID.String()),
			slog.Int("quality", int(event.Quality)),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()

	var updated *domain.LearningItem
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		items := s.items.WithTx(tx)
		sessions := s.sessions.WithTx(tx)

		// The row lock applies concurrent reviews of one item in order.
		item, err := items.GetByIDForUpdate(ctx, event.ItemID)
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to get item: %w", err)
		}

		next, err := s.scheduler.ReviewItem(item, event.Quality, now)
		if err != nil {
			return fmt.Errorf("failed to compute next schedule: %w", err)
		}

		if err := items.UpdateSchedule(ctx, next); err != nil {
			return fmt.Errorf("failed to persist schedule: %w", err)
		}

		if event.SessionID != uuid.Nil {
			session, err := sessions.GetByID(ctx, event.SessionID)
			if err != nil {
				if errors.Is(err, store.ErrSessionNotFound) {
					return ErrSessionNotFound
				}
				return fmt.Errorf("failed to get session: %w", err)
			}

			session.RecordReview(event.Quality, event.ResponseTimeMs)
			if err := sessions.UpdateCounters(ctx, session); err != nil {
				return fmt.Errorf("failed to update session counters: %w", err)
			}
		}

		updated = next
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}

		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("item_id", event.ItemID.String()))
		return nil, NewSubmitReviewError("failed to apply review", err)
	}

	log.Debug("review applied",
		slog.String("item_id", event.ItemID.String()),
		slog.Int("quality", int(event.Quality)),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.Int("interval_days", updated.IntervalDays),
		slog.Time("next_review_at", updated.NextReviewAt))

	return updated, nil
}

// GetNextItem implements Service.GetNextItem.
func (s *serviceImpl) GetNextItem(
	ctx context.Context,
	courseID uuid.UUID,
) (*domain.LearningItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	due, err := s.items.ListDue(ctx, courseID, time.Now().UTC(), 1)
	if err != nil {
		log.Error("failed to list due items",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return nil, NewGetNextItemError("failed to query due items", err)
	}

	if len(due) == 0 {
		log.Debug("no items due", slog.String("course_id", courseID.String()))
		return nil, ErrNoItemsDue
	}

	return due[0], nil
}

// PostponeItem implements Service.PostponeItem.
func (s *serviceImpl) PostponeItem(
	ctx context.Context,
	itemID uuid.UUID,
	days int,
) (*domain.LearningItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()

	var updated *domain.LearningItem
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		items := s.items.WithTx(tx)

		item, err := items.GetByIDForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to get item: %w", err)
		}

		next, err := s.scheduler.Postpone(item, days, now)
		if err != nil {
			return err
		}

		if err := items.UpdateSchedule(ctx, next); err != nil {
			return fmt.Errorf("failed to persist schedule: %w", err)
		}

		updated = next
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, srs.ErrInvalidDays) {
			return nil, err
		}

		log.Error("failed to postpone item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, NewPostponeItemError("failed to postpone item", err)
	}

	return updated, nil
}
