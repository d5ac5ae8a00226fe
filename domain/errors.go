package domain

import "fmt"

// ErrorCode classifies domain errors for the cmd layer's exit-code mapping.
type ErrorCode string

const (
	// ErrCodeToolError covers failures of the external analysis process
	ErrCodeToolError ErrorCode = "TOOL_ERROR"

	// ErrCodePublishError covers remote check-run lifecycle failures
	ErrCodePublishError ErrorCode = "PUBLISH_ERROR"

	// ErrCodeConfigError covers invalid or missing configuration
	ErrCodeConfigError ErrorCode = "CONFIG_ERROR"
)

// DomainError is an error with a stable code and an optional wrapped cause.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewToolError creates a DomainError for analysis tool failures.
func NewToolError(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeToolError, Message: message, Cause: cause}
}

// NewPublishError creates a DomainError for check-run publishing failures.
func NewPublishError(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodePublishError, Message: message, Cause: cause}
}

// NewConfigError creates a DomainError for configuration failures.
func NewConfigError(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeConfigError, Message: message, Cause: cause}
}
