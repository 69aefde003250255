package study

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

// Service provides operations for assembling and retrieving study sessions.
type Service interface {
	// StartSession assembles a new session for the course: due items
	// first, never-reviewed items backfilled up to maxCards, ordered
	// according to the session type. The assembled order is persisted with
	// the session. The returned items match the session's ItemIDs order.
	//
	// Returns ErrEmptySession when the course has nothing to study.
	StartSession(
		ctx context.Context,
		courseID uuid.UUID,
		sessionType domain.SessionType,
		maxCards int,
	) (*domain.StudySession, []*domain.LearningItem, error)

	// GetSession retrieves a session by ID, or ErrSessionNotFound.
	GetSession(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	items    store.ItemStore
	sessions store.SessionStore
	logger   *slog.Logger

	// runTx executes fn within a storage transaction. Tests substitute a
	// runner that calls fn directly.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewService creates a new study Service implementation.
func NewService(
	db *sql.DB,
	items store.ItemStore,
	sessions store.SessionStore,
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

	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		items:    items,
		sessions: sessions,
		logger:   log.With(slog.String("component", "study_service")),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// StartSession implements Service.StartSession.
func (s *serviceImpl) StartSession(
	ctx context.Context,
	courseID uuid.UUID,
	sessionType domain.SessionType,
	maxCards int,
) (*domain.StudySession, []*domain.LearningItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if courseID == uuid.Nil {
		return nil, nil, domain.ErrSessionCourseIDEmpty
	}
	if !sessionType.Valid() {
		return nil, nil, domain.ErrInvalidSessionType
	}
	if maxCards < 1 {
		return nil, nil, domain.ErrInvalidSessionMaxSize
	}

	now := time.Now().UTC()

	var (
		session *domain.StudySession
		cards   []*domain.LearningItem
	)
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		items := s.items.WithTx(tx)
		sessions := s.sessions.WithTx(tx)

		// ListDue includes never-reviewed items, but session assembly
		// treats those as the backfill pool, so only previously reviewed
		// items count as due here.
		candidates, err := items.ListDue(ctx, courseID, now, 0)
		if err != nil {
			return fmt.Errorf("failed to list due items: %w", err)
		}
		due := reviewedOnly(candidates)
		if len(due) > maxCards {
			due = due[:maxCards]
		}

		var fresh []*domain.LearningItem
		if room := maxCards - len(due); room > 0 {
			fresh, err = items.ListNew(ctx, courseID, room)
			if err != nil {
				return fmt.Errorf("failed to list new items: %w", err)
			}
		}

		cards, err = srs.AssembleSession(due, fresh, sessionType, maxCards)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			return ErrEmptySession
		}

		itemIDs := make([]uuid.UUID, len(cards))
		for i, card := range cards {
			itemIDs[i] = card.ID
		}

		session, err = domain.NewStudySession(courseID, sessionType, itemIDs)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		if err := sessions.Create(ctx, session); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrEmptySession) {
			log.Debug("no items to study", slog.String("course_id", courseID.String()))
			return nil, nil, ErrEmptySession
		}

		log.Error("failed to start session",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return nil, nil, NewStartSessionError("failed to assemble session", err)
	}

	log.Info("session started",
		slog.String("session_id", session.ID.String()),
		slog.String("course_id", courseID.String()),
		slog.String("type", string(sessionType)),
		slog.Int("cards", len(cards)))

	return session, cards, nil
}

// GetSession implements Service.GetSession.
func (s *serviceImpl) GetSession(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}

		log.Error("failed to get session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, NewGetSessionError("failed to retrieve session", err)
	}

	return session, nil
}

// reviewedOnly filters items to those with at least one past review,
// preserving order.
func reviewedOnly(items []*domain.LearningItem) []*domain.LearningItem {
	out := make([]*domain.LearningItem, 0, len(items))
	for _, item := range items {
		if item.Reviewed() {
			out = append(out, item)
		}
	}
	return out
}
