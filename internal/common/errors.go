package common

import (
	"errors"
	"fmt"
)

// Error codes for the ingestion pipeline's failure taxonomy.
const (
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeInsufficientText  = "INSUFFICIENT_TEXT"
	CodeServiceError      = "SERVICE_ERROR"
	CodeSchemaParse       = "SCHEMA_PARSE_ERROR"
	CodePersistence       = "PERSISTENCE_ERROR"
	CodeAlreadyParsed     = "ALREADY_PARSED"
	CodeConfig            = "CONFIG_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// CodeOf extracts the AppError code from an error chain, or "" when none is present.
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsExtractionFailure reports whether the error is one of the two extraction-service
// failure modes the orchestrator recovers from by falling back.
func IsExtractionFailure(err error) bool {
	switch CodeOf(err) {
	case CodeServiceError, CodeSchemaParse:
		return true
	}
	return false
}
