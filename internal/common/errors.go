package common

import (
	"errors"
	"fmt"
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

// Pipeline error taxonomy. Handlers match on these with errors.Is to pick a
// status code and message.
var (
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrSizeExceeded       = errors.New("file size exceeded")
	ErrExtractionFailed   = errors.New("text extraction failed")
	ErrServiceUnavailable = errors.New("generation backend unavailable")
	ErrGenerationFailed   = errors.New("test case generation failed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrExportAnomaly      = errors.New("exported artifact implausibly small")
)

// Error constructors
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
