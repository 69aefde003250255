package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item-specific validation errors
var (
	// ErrItemIDEmpty is returned when an item ID is empty or nil.
	ErrItemIDEmpty = errors.New("item ID cannot be empty")

	// ErrItemCourseIDEmpty is returned when an item's course ID is empty or nil.
	ErrItemCourseIDEmpty = errors.New("item course ID cannot be empty")

	// ErrItemQuestionEmpty is returned when an item's question is empty.
	ErrItemQuestionEmpty = errors.New("item question cannot be empty")

	// ErrItemAnswerEmpty is returned when an item's answer is empty.
	ErrItemAnswerEmpty = errors.New("item answer cannot be empty")

	// ErrItemDifficultyRange is returned when an item's difficulty is outside [0, 1].
	ErrItemDifficultyRange = errors.New("item difficulty must be between 0 and 1")

	// ErrInvalidInterval is returned when a scheduling interval is negative.
	ErrInvalidInterval = errors.New("interval must be greater than or equal to 0")

	// ErrInvalidEaseFactor is returned when an ease factor is not a usable multiplier.
	ErrInvalidEaseFactor = errors.New("ease factor must be greater than 1.0")

	// ErrInvalidRepetitions is returned when a repetition count is negative.
	ErrInvalidRepetitions = errors.New("repetitions must be greater than or equal to 0")
)

// Default scheduling values for newly created items.
const (
	DefaultEaseFactor = 2.5
)

// LearningItem is a reviewable unit: a flashcard or quiz concept belonging to
// a course. Content fields (Question, Answer, Difficulty) are owned by the
// author and mutated only through edit operations. Scheduling fields
// (EaseFactor through TotalQuality) are mutated only by the review scheduler.
type LearningItem struct {
	ID       uuid.UUID `json:"id"`
	CourseID uuid.UUID `json:"course_id"`

	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Difficulty float64 `json:"difficulty"` // Author-assigned, normalized to [0, 1]

	EaseFactor     float64   `json:"ease_factor"`      // Interval growth multiplier (1.3-2.5)
	IntervalDays   int       `json:"interval_days"`    // Days until the next scheduled review
	Repetitions    int       `json:"repetitions"`      // Consecutive successful reviews
	LastReviewedAt time.Time `json:"last_reviewed_at"` // Zero value means never reviewed
	NextReviewAt   time.Time `json:"next_review_at"`
	ReviewCount    int       `json:"review_count"`  // Total reviews, analytics only
	TotalQuality   int       `json:"total_quality"` // Sum of quality ratings, analytics only

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLearningItem creates a new item with the given content and default
// scheduling state. New items are due immediately so they can enter a first
// study session without waiting.
func NewLearningItem(courseID uuid.UUID, question, answer string, difficulty float64) (*LearningItem, error) {
	now := time.Now().UTC()
	item := &LearningItem{
		ID:             uuid.New(),
		CourseID:       courseID,
		Question:       question,
		Answer:         answer,
		Difficulty:     difficulty,
		EaseFactor:     DefaultEaseFactor,
		IntervalDays:   0,
		Repetitions:    0,
		LastReviewedAt: time.Time{},
		NextReviewAt:   now,
		ReviewCount:    0,
		TotalQuality:   0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the LearningItem has valid data.
// Returns an error if any field fails validation.
func (i *LearningItem) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if i.CourseID == uuid.Nil {
		return ErrItemCourseIDEmpty
	}

	if strings.TrimSpace(i.Question) == "" {
		return ErrItemQuestionEmpty
	}

	if strings.TrimSpace(i.Answer) == "" {
		return ErrItemAnswerEmpty
	}

	if i.Difficulty < 0 || i.Difficulty > 1 {
		return ErrItemDifficultyRange
	}

	return i.ValidateSchedule()
}

// ValidateSchedule checks only the scheduling fields. The scheduler calls this
// before computing a transition so that a record with missing or corrupted
// state is rejected rather than silently rescheduled.
func (i *LearningItem) ValidateSchedule() error {
	if i.IntervalDays < 0 {
		return ErrInvalidInterval
	}

	if i.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}

	if i.Repetitions < 0 {
		return ErrInvalidRepetitions
	}

	return nil
}

// Reviewed reports whether the item has been reviewed at least once.
func (i *LearningItem) Reviewed() bool {
	return !i.LastReviewedAt.IsZero()
}

// UpdateContent replaces the item's content fields and bumps UpdatedAt.
// Scheduling state is never touched here. Returns an error and leaves the
// item unchanged if the new content is invalid.
func (i *LearningItem) UpdateContent(question, answer string, difficulty float64) error {
	origQuestion, origAnswer, origDifficulty := i.Question, i.Answer, i.Difficulty
	i.Question = question
	i.Answer = answer
	i.Difficulty = difficulty

	if err := i.Validate(); err != nil {
		i.Question = origQuestion
		i.Answer = origAnswer
		i.Difficulty = origDifficulty
		return err
	}

	i.UpdatedAt = time.Now().UTC()
	return nil
}
