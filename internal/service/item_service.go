package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyforge/srs-api/internal/domain"
	"github.com/studyforge/srs-api/internal/platform/logger"
	"github.com/studyforge/srs-api/internal/store"
)

// ItemServiceError is a custom error type for item service errors.
type ItemServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ItemServiceError.
func (e *ItemServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("item service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("item service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ItemServiceError) Unwrap() error {
	return e.Err
}

// NewItemServiceError creates a new ItemServiceError.
func NewItemServiceError(operation, message string, err error) *ItemServiceError {
	return &ItemServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ErrItemNotFound is returned when the requested item does not exist.
var ErrItemNotFound = errors.New("learning item not found")

// ItemService provides learning item content operations. Scheduling state is
// owned by the review service; this service only touches content.
type ItemService interface {
	// CreateItems creates multiple items in a single transaction. Each new
	// item starts due for immediate review. On any failure nothing is
	// persisted.
	CreateItems(ctx context.Context, items []*domain.LearningItem) error

	// GetItem retrieves an item by its ID.
	GetItem(ctx context.Context, itemID uuid.UUID) (*domain.LearningItem, error)

	// EditItem replaces an item's question, answer, and difficulty without
	// touching its scheduling state.
	EditItem(ctx context.Context, itemID uuid.UUID, question, answer string, difficulty float64) (*domain.LearningItem, error)

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// itemServiceImpl implements the ItemService interface.
type itemServiceImpl struct {
	items  store.ItemStore
	logger *slog.Logger

	// runTx executes fn within a storage transaction. Tests substitute a
	// runner that calls fn directly.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewItemService creates a new ItemService.
// It returns an error if any of the required dependencies are nil.
func NewItemService(
	db *sql.DB,
	items store.ItemStore,
	log *slog.Logger,
) (ItemService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if items == nil {
		return nil, domain.NewValidationError("items", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &itemServiceImpl{
		items:  items,
		logger: log.With(slog.String("component", "item_service")),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}, nil
}

// CreateItems implements ItemService.CreateItems.
func (s *itemServiceImpl) CreateItems(ctx context.Context, items []*domain.LearningItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(items) == 0 {
		return nil
	}

	// Validate everything up front so a bad item fails the batch before
	// anything is written.
	for _, item := range items {
		if item == nil {
			return domain.NewValidationError("items", "cannot contain nil entries", domain.ErrValidation)
		}
		if err := item.Validate(); err != nil {
			return err
		}
	}

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txItems := s.items.WithTx(tx)
		for _, item := range items {
			if err := txItems.Create(ctx, item); err != nil {
				return fmt.Errorf("failed to create item %s: %w", item.ID, err)
			}
		}
		return nil
	})

	if err != nil {
		log.Error("failed to create items",
			slog.String("error", err.Error()),
			slog.Int("count", len(items)))
		return NewItemServiceError("create_items", "failed to create items", err)
	}

	log.Debug("items created", slog.Int("count", len(items)))
	return nil
}

// GetItem implements ItemService.GetItem.
func (s *itemServiceImpl) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.LearningItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}

		log.Error("failed to get item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, NewItemServiceError("get_item", "failed to retrieve item", err)
	}

	return item, nil
}

// EditItem implements ItemService.EditItem.
func (s *itemServiceImpl) EditItem(
	ctx context.Context,
	itemID uuid.UUID,
	question, answer string,
	difficulty float64,
) (*domain.LearningItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

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

		if err := item.UpdateContent(question, answer, difficulty); err != nil {
			return err
		}

		if err := items.UpdateContent(ctx, item); err != nil {
			return fmt.Errorf("failed to persist content: %w", err)
		}

		updated = item
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, domain.ErrValidation) ||
			isDomainContentError(err) {
			return nil, err
		}

		log.Error("failed to edit item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, NewItemServiceError("edit_item", "failed to edit item", err)
	}

	return updated, nil
}

// DeleteItem implements ItemService.DeleteItem.
func (s *itemServiceImpl) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.items.Delete(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return ErrItemNotFound
		}

		log.Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return NewItemServiceError("delete_item", "failed to delete item", err)
	}

	log.Debug("item deleted", slog.String("item_id", itemID.String()))
	return nil
}

// isDomainContentError reports whether err is one of the content validation
// errors an edit can surface, which callers map to a 4xx response.
func isDomainContentError(err error) bool {
	return errors.Is(err, domain.ErrItemQuestionEmpty) ||
		errors.Is(err, domain.ErrItemAnswerEmpty) ||
		errors.Is(err, domain.ErrItemDifficultyRange)
}
