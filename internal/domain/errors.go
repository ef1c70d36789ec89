package domain

import (
	"errors"
	"fmt"
)

// Common error types
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// ErrSessionNotFound is returned when a builder session does not exist or has expired
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("builder session not found: %s", e.SessionID)
}

// ErrSaveInProgress is returned when a save is requested while another one is pending
var ErrSaveInProgress = errors.New("a save is already in progress for this session")

// TemplateAPIError carries the error text returned by a template store
type TemplateAPIError struct {
	StatusCode int
	Message    string
}

func (e *TemplateAPIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is one of the not-found errors of the domain
func IsNotFound(err error) bool {
	var (
		nf  *ErrNotFound
		tnf *ErrTemplateNotFound
		cnf *ErrCampaignNotFound
		rnf *ErrRecipientNotFound
		snf *ErrSessionNotFound
		nr  *ErrNoRecipients
	)
	return errors.As(err, &nf) || errors.As(err, &tnf) || errors.As(err, &cnf) ||
		errors.As(err, &rnf) || errors.As(err, &snf) || errors.As(err, &nr)
}
