// Package review orchestrates the review workflow: loading an item,
// running the scheduling algorithm, and persisting the new schedule, all
// within a single transaction so a review is applied completely or not at
// all.
package review

import (
	"errors"
	"fmt"
)

// Common error types for the review service
var (
	// ErrNoItemsDue indicates that the course has no items due for review.
	ErrNoItemsDue = errors.New("no items due for review")

	// ErrItemNotFound indicates that the learning item does not exist.
	ErrItemNotFound = errors.New("learning item not found")

	// ErrSessionNotFound indicates that the study session referenced by a
	// review does not exist.
	ErrSessionNotFound = errors.New("study session not found")
)

// ServiceError wraps errors from the review service with the operation that
// failed, so consumers can differentiate failures with errors.As instead of
// string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "submit_review").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitReviewError returns a new ServiceError for the submit_review operation.
func NewSubmitReviewError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_review", Message: message, Err: err}
}

// NewGetNextItemError returns a new ServiceError for the get_next_item operation.
func NewGetNextItemError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "get_next_item", Message: message, Err: err}
}

// NewPostponeItemError returns a new ServiceError for the postpone_item operation.
func NewPostponeItemError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "postpone_item", Message: message, Err: err}
}
