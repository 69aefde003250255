package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionType selects how a study session mixes due and new items.
type SessionType string

// Possible session type values
const (
	// SessionTypeReview puts due items first and appends new items as a
	// single block when there is room left.
	SessionTypeReview SessionType = "review"

	// SessionTypeMixed interleaves new items evenly among the due items.
	SessionTypeMixed SessionType = "mixed"
)

// Session-specific validation errors
var (
	ErrSessionIDEmpty        = errors.New("session ID cannot be empty")
	ErrSessionCourseIDEmpty  = errors.New("session course ID cannot be empty")
	ErrInvalidSessionType    = errors.New("invalid session type")
	ErrInvalidSessionMaxSize = errors.New("session max cards must be at least 1")
)

// Valid reports whether the session type is one of the known values.
func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeReview, SessionTypeMixed:
		return true
	default:
		return false
	}
}

// StudySession is one sitting's ordered card queue plus its running
// counters. The scheduler assembles the item order; the session itself only
// accumulates statistics as reviews are submitted against it.
type StudySession struct {
	ID       uuid.UUID   `json:"id"`
	CourseID uuid.UUID   `json:"course_id"`
	Type     SessionType `json:"type"`

	ItemIDs []uuid.UUID `json:"item_ids"` // Review order, fixed at assembly time

	CardsReviewed   int `json:"cards_reviewed"`
	CorrectCount    int `json:"correct_count"`
	TotalResponseMs int `json:"total_response_ms"`

	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStudySession creates a session over the given ordered items.
func NewStudySession(courseID uuid.UUID, sessionType SessionType, itemIDs []uuid.UUID) (*StudySession, error) {
	now := time.Now().UTC()
	session := &StudySession{
		ID:        uuid.New(),
		CourseID:  courseID,
		Type:      sessionType,
		ItemIDs:   itemIDs,
		StartedAt: now,
		UpdatedAt: now,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.CourseID == uuid.Nil {
		return ErrSessionCourseIDEmpty
	}

	if !s.Type.Valid() {
		return ErrInvalidSessionType
	}

	return nil
}

// RecordReview folds one completed review into the session counters.
func (s *StudySession) RecordReview(quality Quality, responseTimeMs int) {
	s.CardsReviewed++
	if quality.Success() {
		s.CorrectCount++
	}
	s.TotalResponseMs += responseTimeMs
	s.UpdatedAt = time.Now().UTC()
}

// AverageResponseMs returns the mean response time across recorded reviews,
// or 0 when nothing has been reviewed yet.
func (s *StudySession) AverageResponseMs() int {
	if s.CardsReviewed == 0 {
		return 0
	}
	return s.TotalResponseMs / s.CardsReviewed
}
