// Package errors provides custom error types for the stemset system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the stemset system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariantViolation indicates that a resolution-run invariant was
	// broken; the run must abort without writing partial output
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrEmptyVocabulary indicates that a vocabulary category has no entries
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// InvariantError represents a broken resolution invariant, such as a record
// being claimed by two duplicate groups or appearing both removed and
// surviving. These are fatal: the engine returns the error and produces no
// output tables.
type InvariantError struct {
	RecordID string
	Message  string
}

// Error implements the error interface
func (e *InvariantError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("invariant violation on record %s: %s", e.RecordID, e.Message)
	}
	return fmt.Sprintf("invariant violation: %s", e.Message)
}

// Is implements errors.Is support
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// NewInvariantError creates a new InvariantError
func NewInvariantError(recordID, message string) *InvariantError {
	return &InvariantError{RecordID: recordID, Message: message}
}

// DataQualityError represents a row that could not enter resolution,
// typically because a required field is missing. The row is excluded from
// the input table and reported to the caller, never processed.
type DataQualityError struct {
	SourceFile string
	Row        int
	Field      string
	Message    string
}

// Error implements the error interface
func (e *DataQualityError) Error() string {
	return fmt.Sprintf("data quality issue in %s row %d (field %s): %s",
		e.SourceFile, e.Row, e.Field, e.Message)
}

// Is implements errors.Is support
func (e *DataQualityError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IOError represents an error reading or writing a data file
type IOError struct {
	Operation string // "read" or "write"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error with file operation context
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// IsNotFound checks if an error indicates a missing resource
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation failure
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvariantViolation checks if an error is a fatal invariant violation
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}
