package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/studyforge/srs-api/internal/api/shared"
	"github.com/studyforge/srs-api/internal/domain"
	"github.com/studyforge/srs-api/internal/platform/logger"
	"github.com/studyforge/srs-api/internal/redact"
	"github.com/studyforge/srs-api/internal/service/review"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, log *slog.Logger) *ReviewHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// GetNextItem handles GET /items/next requests. It retrieves the most
// overdue item in the course given by the course_id query parameter,
// responding 204 when nothing is due.
func (h *ReviewHandler) GetNextItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	rawCourseID := r.URL.Query().Get("course_id")
	if rawCourseID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "course_id query parameter is required")
		return
	}

	courseID, err := uuid.Parse(rawCourseID)
	if err != nil {
		log.Warn("invalid course ID format", slog.String("course_id", rawCourseID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid course ID format")
		return
	}

	item, err := h.reviewService.GetNextItem(r.Context(), courseID)

	// Special case: nothing due right now
	if errors.Is(err, review.ErrNoItemsDue) {
		log.Debug("no items due", slog.String("course_id", courseID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get next item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("next item retrieved",
		slog.String("course_id", courseID.String()),
		slog.String("item_id", item.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// SubmitReview handles POST /items/{id}/review requests. It applies a
// quality-graded review to the item and returns the updated scheduling state.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := parseItemID(w, r, log)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("item_id", itemID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	var sessionID uuid.UUID
	if req.SessionID != "" {
		var err error
		sessionID, err = uuid.Parse(req.SessionID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
			return
		}
	}

	event := domain.ReviewEvent{
		ItemID:         itemID,
		Quality:        domain.Quality(*req.Quality),
		ResponseTimeMs: req.ResponseTimeMs,
		SessionID:      sessionID,
	}

	item, err := h.reviewService.SubmitReview(r.Context(), event)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review submitted",
		slog.String("item_id", itemID.String()),
		slog.Int("quality", int(event.Quality)),
		slog.Int("interval_days", item.IntervalDays))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// PostponeItem handles POST /items/{id}/postpone requests. It pushes the
// item's next review forward without touching the rest of its schedule.
func (h *ReviewHandler) PostponeItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := parseItemID(w, r, log)
	if !ok {
		return
	}

	var req PostponeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("item_id", itemID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	item, err := h.reviewService.PostponeItem(r.Context(), itemID, req.Days)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to postpone item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("item postponed",
		slog.String("item_id", itemID.String()),
		slog.Int("days", req.Days))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}
