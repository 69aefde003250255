package api

import (
	"time"

	"github.com/studyforge/srs-api/internal/domain"
)

// Common request/response structures

// NewItemRequest defines one item in a batch creation payload.
type NewItemRequest struct {
	Question   string  `json:"question"   validate:"required"`
	Answer     string  `json:"answer"     validate:"required"`
	Difficulty float64 `json:"difficulty" validate:"gte=0,lte=1"`
}

// CreateItemsRequest defines the payload for the batch item creation endpoint.
type CreateItemsRequest struct {
	CourseID string           `json:"course_id" validate:"required,uuid"`
	Items    []NewItemRequest `json:"items"     validate:"required,min=1,dive"`
}

// UpdateItemRequest defines the payload for the item content edit endpoint.
type UpdateItemRequest struct {
	Question   string  `json:"question"   validate:"required"`
	Answer     string  `json:"answer"     validate:"required"`
	Difficulty float64 `json:"difficulty" validate:"gte=0,lte=1"`
}

// SubmitReviewRequest defines the payload for the review submission endpoint.
// Quality is a pointer so a missing field is distinguishable from a valid 0.
type SubmitReviewRequest struct {
	Quality        *int   `json:"quality"          validate:"required,gte=0,lte=5"`
	ResponseTimeMs int    `json:"response_time_ms" validate:"gte=0"`
	SessionID      string `json:"session_id,omitempty" validate:"omitempty,uuid"`
}

// PostponeRequest defines the payload for the item postpone endpoint.
type PostponeRequest struct {
	Days int `json:"days" validate:"required,gte=1"`
}

// CreateSessionRequest defines the payload for the session creation endpoint.
// MaxCards of 0 uses the server's configured default.
type CreateSessionRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
	Type     string `json:"type"      validate:"required,oneof=review mixed"`
	MaxCards int    `json:"max_cards" validate:"gte=0"`
}

// ItemResponse represents the response data for a learning item, content and
// scheduling state together.
type ItemResponse struct {
	ID           string  `json:"id"`
	CourseID     string  `json:"course_id"`
	Question     string  `json:"question"`
	Answer       string  `json:"answer"`
	Difficulty   float64 `json:"difficulty"`
	EaseFactor   float64 `json:"ease_factor"`
	IntervalDays int     `json:"interval_days"`
	Repetitions  int     `json:"repetitions"`

	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"` // Absent when never reviewed
	NextReviewAt   time.Time  `json:"next_review_at"`
	ReviewCount    int        `json:"review_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionResponse represents the response data for a study session.
type SessionResponse struct {
	ID       string   `json:"id"`
	CourseID string   `json:"course_id"`
	Type     string   `json:"type"`
	ItemIDs  []string `json:"item_ids"`

	CardsReviewed     int `json:"cards_reviewed"`
	CorrectCount      int `json:"correct_count"`
	AverageResponseMs int `json:"average_response_ms"`

	StartedAt time.Time `json:"started_at"`

	// Items carries the full card order on session creation; omitted on
	// plain session reads.
	Items []ItemResponse `json:"items,omitempty"`
}

// itemToResponse converts a domain.LearningItem to an ItemResponse.
func itemToResponse(item *domain.LearningItem) ItemResponse {
	resp := ItemResponse{
		ID:           item.ID.String(),
		CourseID:     item.CourseID.String(),
		Question:     item.Question,
		Answer:       item.Answer,
		Difficulty:   item.Difficulty,
		EaseFactor:   item.EaseFactor,
		IntervalDays: item.IntervalDays,
		Repetitions:  item.Repetitions,
		NextReviewAt: item.NextReviewAt,
		ReviewCount:  item.ReviewCount,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}

	if item.Reviewed() {
		t := item.LastReviewedAt
		resp.LastReviewedAt = &t
	}

	return resp
}

// itemsToResponse converts a slice of items, preserving order.
func itemsToResponse(items []*domain.LearningItem) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = itemToResponse(item)
	}
	return out
}

// sessionToResponse converts a domain.StudySession to a SessionResponse.
// items may be nil when the card order is not being returned.
func sessionToResponse(session *domain.StudySession, items []*domain.LearningItem) SessionResponse {
	itemIDs := make([]string, len(session.ItemIDs))
	for i, id := range session.ItemIDs {
		itemIDs[i] = id.String()
	}

	resp := SessionResponse{
		ID:                session.ID.String(),
		CourseID:          session.CourseID.String(),
		Type:              string(session.Type),
		ItemIDs:           itemIDs,
		CardsReviewed:     session.CardsReviewed,
		CorrectCount:      session.CorrectCount,
		AverageResponseMs: session.AverageResponseMs(),
		StartedAt:         session.StartedAt,
	}

	if items != nil {
		resp.Items = itemsToResponse(items)
	}

	return resp
}
