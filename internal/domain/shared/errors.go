// Package shared contains common domain errors and events used across
// all Ember domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound = errors.New("not found")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidOperation = errors.New("invalid operation")

	// Collaborator failures
	ErrCatalogLoad      = errors.New("catalog load failure")
	ErrPersistenceRead  = errors.New("persistence read failure")
	ErrPersistenceWrite = errors.New("persistence write failure")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "progress", "daily", "catalog"
	Op      string // Operation that failed, e.g., "CompleteTask"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Daily task errors. Both are invalid operations; the first also matches
// ErrNotFound so callers may check either kind.
var (
	ErrTaskNotInToday       = WrapError("daily", "CompleteTask", ErrInvalidOperation, "task is not in today's set", ErrNotFound)
	ErrTaskAlreadyCompleted = WrapError("daily", "CompleteTask", ErrInvalidOperation, "task already completed", ErrNotFound)
	ErrTasksNotFinished     = NewDomainError("daily", "RequestBonusTask", ErrInvalidOperation, "today's tasks are not all completed")
	ErrNoBonusAvailable     = NewDomainError("daily", "RequestBonusTask", ErrNotFound, "no further task available")
	ErrCatalogUnavailable   = NewDomainError("catalog", "Load", ErrCatalogLoad, "tasks unavailable")
)

// Progress errors
var (
	ErrNegativeAmount   = NewDomainError("progress", "Add", ErrNegativeValue, "reward amount cannot be negative")
	ErrInvalidPace      = NewDomainError("progress", "Validate", ErrInvalidInput, "unknown pace")
	ErrInvalidSituation = NewDomainError("progress", "Validate", ErrInvalidInput, "unknown situation")
	ErrInvalidGoal      = NewDomainError("progress", "Validate", ErrInvalidInput, "unknown goal")
	ErrInvalidAnswer    = NewDomainError("progress", "Score", ErrValueOutOfRange, "answer index must be between 0 and 6")
	ErrInvalidReminder  = NewDomainError("progress", "Validate", ErrInvalidFormat, "reminder time must be HH:MM")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidOperation checks if the operation was rejected without a state change.
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsPersistence checks if the error came from the storage collaborator.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistenceRead) || errors.Is(err, ErrPersistenceWrite)
}
