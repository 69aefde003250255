package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/studyforge/srs-api/internal/domain"
)

// Common errors
var (
	// ErrNilItem is returned when a nil item is passed to the scheduler.
	ErrNilItem = errors.New("learning item cannot be nil")

	// ErrInvalidSchedule is returned when an item's scheduling state is
	// missing or corrupted (bad ease factor, negative interval or
	// repetition count). The caller gets the error instead of a schedule
	// computed from garbage.
	ErrInvalidSchedule = errors.New("invalid scheduling state")

	// ErrInvalidDays is returned when a postpone request is below one day.
	ErrInvalidDays = errors.New("postpone days must be at least 1")
)

// Service defines the interface for review scheduling operations.
// Implementations are stateless between calls: all scheduling state lives in
// the LearningItem records passed in and returned.
type Service interface {
	// ReviewItem computes the item's next scheduling state from a quality
	// grade. It returns a new item copy and never mutates its input; the
	// caller is responsible for persisting the result. A quality grade
	// outside [0, 5] fails with domain.ErrInvalidQuality.
	ReviewItem(
		item *domain.LearningItem,
		quality domain.Quality,
		now time.Time,
	) (*domain.LearningItem, error)

	// Postpone pushes the item's next review forward by the given number
	// of days without touching the rest of the scheduling state.
	Postpone(
		item *domain.LearningItem,
		days int,
		now time.Time,
	) (*domain.LearningItem, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduler service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduler service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ReviewItem implements the Service interface.
func (s *defaultService) ReviewItem(
	item *domain.LearningItem,
	quality domain.Quality,
	now time.Time,
) (*domain.LearningItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if err := quality.Validate(); err != nil {
		return nil, err
	}

	if err := item.ValidateSchedule(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	return calculateNextSchedule(item, quality, now, s.params), nil
}

// Postpone implements the Service interface.
func (s *defaultService) Postpone(
	item *domain.LearningItem,
	days int,
	now time.Time,
) (*domain.LearningItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := *item
	next.NextReviewAt = item.NextReviewAt.AddDate(0, 0, days)
	next.UpdatedAt = now

	return &next, nil
}
