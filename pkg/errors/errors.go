package errors

import (
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeMissingParameter indicates the caller's input was incomplete
	ErrorTypeMissingParameter ErrorType = "MISSING_PARAMETER"

	// ErrorTypeInvalidMedicine indicates the normalization provider found no match
	ErrorTypeInvalidMedicine ErrorType = "INVALID_MEDICINE"

	// ErrorTypeLocationNotFound indicates the geocoding provider found no match
	ErrorTypeLocationNotFound ErrorType = "LOCATION_NOT_FOUND"

	// ErrorTypeUpstream indicates a provider was unreachable, returned a non-2xx
	// status, or returned a malformed payload
	ErrorTypeUpstream ErrorType = "UPSTREAM"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error

	// Suggestions carries ranked spelling suggestions for INVALID_MEDICINE errors
	Suggestions []string

	// UpstreamStatus preserves the upstream HTTP status for UPSTREAM errors;
	// zero when the status is unknown (transport failure, malformed payload)
	UpstreamStatus int
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewMissingParameterError creates a new missing parameter error
func NewMissingParameterError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeMissingParameter,
		Message: message,
	}
}

// NewInvalidMedicineError creates a new invalid medicine error carrying suggestions
func NewInvalidMedicineError(message string, suggestions []string) *AppError {
	return &AppError{
		Type:        ErrorTypeInvalidMedicine,
		Message:     message,
		Suggestions: suggestions,
	}
}

// NewLocationNotFoundError creates a new location not found error
func NewLocationNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeLocationNotFound,
		Message: message,
	}
}

// NewUpstreamError creates a new upstream provider error. status is the upstream
// HTTP status code when known, zero otherwise.
func NewUpstreamError(message string, status int, err error) *AppError {
	return &AppError{
		Type:           ErrorTypeUpstream,
		Message:        message,
		Err:            err,
		UpstreamStatus: status,
	}
}
