// Package study implements study session assembly and retrieval. A session
// is an ordered queue of cards assembled from the course's due items,
// backfilled with never-reviewed items, persisted so the client can walk it
// and submit reviews against it.
package study

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrEmptySession is returned when a course has no due and no new
	// items to assemble a session from.
	ErrEmptySession = errors.New("no items available for a study session")

	// ErrSessionNotFound is returned when the requested session does not
	// exist.
	ErrSessionNotFound = errors.New("study session not found")
)

// ServiceError represents an error from the study service with
// additional context about the operation that failed.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "start_session").
	Operation string

	// Message is a human-readable description of the error.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewStartSessionError creates a ServiceError for session assembly failures.
func NewStartSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "start_session", Message: message, Err: err}
}

// NewGetSessionError creates a ServiceError for session retrieval failures.
func NewGetSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "get_session", Message: message, Err: err}
}
