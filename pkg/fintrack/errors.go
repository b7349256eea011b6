package fintrack

import (
	"errors"
	"fmt"

	internalTypes "github.com/eshaffer321/fintrack-go/internal/types"
)

var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = internalTypes.ErrNotAuthenticated

	// ErrLoginFailed is returned when login fails
	ErrLoginFailed = internalTypes.ErrLoginFailed

	// ErrSessionExpired is returned when session has expired
	ErrSessionExpired = internalTypes.ErrSessionExpired

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = internalTypes.ErrRateLimited

	// ErrTimeout is returned on timeout
	ErrTimeout = internalTypes.ErrTimeout

	// ErrNotFound is returned when resource not found
	ErrNotFound = internalTypes.ErrNotFound

	// ErrConflict is returned when the server refuses a change, e.g. deleting
	// an account that still has transactions
	ErrConflict = internalTypes.ErrConflict

	// ErrServerError is returned for server errors
	ErrServerError = internalTypes.ErrServerError

	// ErrInvalidRequest is returned for invalid requests
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnknownKind is returned when a transaction is neither income nor expense
	ErrUnknownKind = errors.New("unknown transaction kind")

	// ErrNegativeAmount is returned when a transaction carries a negative amount
	ErrNegativeAmount = errors.New("negative transaction amount")
)

// Error represents an API error
type Error = internalTypes.Error

// NewError creates a new API error
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// ValidationError represents a rejected form field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []*ValidationError `json:"errors"`
}

// Error implements the error interface
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// Is lets errors.Is(err, ErrInvalidRequest) match validation failures
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrInvalidRequest
}

// Field returns the error for field, or nil
func (e *ValidationErrors) Field(field string) *ValidationError {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe
		}
	}
	return nil
}

// AggregationError reports the record that broke the aggregator's input contract
type AggregationError struct {
	RecordID int64
	Err      error
}

// Error implements the error interface
func (e *AggregationError) Error() string {
	return fmt.Sprintf("transaction %d: %v", e.RecordID, e.Err)
}

// Unwrap returns the sentinel
func (e *AggregationError) Unwrap() error {
	return e.Err
}

// IsAuthError checks if error is authentication related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrLoginFailed) ||
		errors.Is(err, ErrSessionExpired)
}

// IsValidationError checks if err came from client-side form validation
func IsValidationError(err error) bool {
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

// IsRetryable checks if error is retryable
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServerError) {
		return true
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}

	return false
}
