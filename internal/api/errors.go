package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/studyforge/srs-api/internal/domain"
	"github.com/studyforge/srs-api/internal/domain/srs"
	"github.com/studyforge/srs-api/internal/service"
	"github.com/studyforge/srs-api/internal/service/review"
	"github.com/studyforge/srs-api/internal/service/study"
	"github.com/studyforge/srs-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrSessionNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, review.ErrItemNotFound),
		errors.Is(err, review.ErrSessionNotFound),
		errors.Is(err, study.ErrSessionNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidQuality),
		errors.Is(err, domain.ErrInvalidSessionType),
		errors.Is(err, domain.ErrInvalidSessionMaxSize),
		errors.Is(err, domain.ErrNegativeResponseTime),
		errors.Is(err, domain.ErrItemQuestionEmpty),
		errors.Is(err, domain.ErrItemAnswerEmpty),
		errors.Is(err, domain.ErrItemDifficultyRange),
		errors.Is(err, srs.ErrInvalidDays),
		errors.Is(err, srs.ErrInvalidSchedule):
		return http.StatusBadRequest

	// Special cases: handled by handlers with 204, mapped here as a fallback
	case errors.Is(err, review.ErrNoItemsDue),
		errors.Is(err, study.ErrEmptySession):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, review.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrSessionNotFound),
		errors.Is(err, review.ErrSessionNotFound),
		errors.Is(err, study.ErrSessionNotFound):
		return "Session not found"

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return "Item already exists"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidQuality):
		return "Quality rating must be between 0 and 5"

	case errors.Is(err, domain.ErrNegativeResponseTime):
		return "Response time cannot be negative"

	case errors.Is(err, domain.ErrInvalidSessionType):
		return "Invalid session type"

	case errors.Is(err, domain.ErrInvalidSessionMaxSize):
		return "Session size must be at least 1"

	case errors.Is(err, domain.ErrItemQuestionEmpty):
		return "Question cannot be empty"

	case errors.Is(err, domain.ErrItemAnswerEmpty):
		return "Answer cannot be empty"

	case errors.Is(err, domain.ErrItemDifficultyRange):
		return "Difficulty must be between 0 and 1"

	case errors.Is(err, srs.ErrInvalidDays):
		return "Postpone days must be at least 1"

	case errors.Is(err, srs.ErrInvalidSchedule):
		return "Item has invalid scheduling state"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'SubmitReviewRequest.Quality' Error:Field
		// validation for 'Quality' failed on the 'max' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "value too small"
	case "max":
		return "value too large"
	case "gte":
		return "value too small"
	case "lte":
		return "value too large"
	case "oneof":
		return "value not allowed"
	case "uuid":
		return "invalid ID format"
	default:
		return "invalid value"
	}
}
