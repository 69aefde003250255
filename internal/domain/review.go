package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Quality is a 0-5 self-assessed recall grade for a completed review.
// Grades of 3 and above count as successful recall; grades below 3 count as
// a lapse. The boundary matters, which is why out-of-range values are
// rejected rather than clamped.
type Quality int

// Quality grade bounds and the success threshold.
const (
	MinQuality Quality = 0
	MaxQuality Quality = 5

	// SuccessThreshold is the lowest quality grade that counts as
	// successful recall.
	SuccessThreshold Quality = 3
)

// ErrInvalidQuality is returned when a quality rating is outside [0, 5].
// Ratings are never coerced into range: clamping a 6 to 5 or a -1 to 0 would
// silently change the success/failure classification at the boundary.
var ErrInvalidQuality = errors.New("quality rating must be between 0 and 5")

// Validate checks that the quality grade is within [0, 5].
func (q Quality) Validate() error {
	if q < MinQuality || q > MaxQuality {
		return ErrInvalidQuality
	}
	return nil
}

// Success reports whether the grade counts as successful recall.
func (q Quality) Success() bool {
	return q >= SuccessThreshold
}

// ReviewEvent is the ephemeral input to the scheduler: one completed review
// of one item. It is not persisted by the scheduler itself; the session
// layer records what it needs for per-session statistics.
type ReviewEvent struct {
	ItemID         uuid.UUID `json:"item_id"`
	Quality        Quality   `json:"quality"`
	ResponseTimeMs int       `json:"response_time_ms"`
	SessionID      uuid.UUID `json:"session_id"` // Optional; Nil when reviewing outside a session
}

// Validate checks if the ReviewEvent has valid data.
func (e *ReviewEvent) Validate() error {
	if e.ItemID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if err := e.Quality.Validate(); err != nil {
		return err
	}

	if e.ResponseTimeMs < 0 {
		return ErrNegativeResponseTime
	}

	return nil
}

// ErrNegativeResponseTime is returned when a review reports a negative
// response time.
var ErrNegativeResponseTime = errors.New("response time cannot be negative")
