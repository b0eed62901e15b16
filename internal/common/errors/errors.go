// Package errors provides standardized error handling for the conversation engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeStoreUnavailable   ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeCatalogEmpty       ErrorCode = "CATALOG_EMPTY"
	ErrCodeUnknownFlowStep    ErrorCode = "UNKNOWN_FLOW_STEP"
	ErrCodeSessionExpired     ErrorCode = "SESSION_EXPIRED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewValidationFailedError creates a non-retryable input validation error.
// Callers recover from it locally; it never aborts a turn.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError creates a retryable session store error.
// A turn that hits this aborts without mutating the session.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Session store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogUnavailableError creates a retryable career catalog I/O error.
// A turn that hits this aborts without mutating the session.
func NewCatalogUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "Career catalog unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogEmptyError creates a non-retryable soft error for a catalog read
// that succeeded but returned no careers. The turn still completes.
func NewCatalogEmptyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogEmpty,
		Message:   "Career catalog contains no entries",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownFlowStepError creates a non-retryable error for a session whose
// flow state references a step outside the assessment script.
func NewUnknownFlowStepError(sessionID string, step int) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownFlowStep,
		Message:   "Session flow points at an unknown assessment step",
		Details:   fmt.Sprintf("sessionId: %s, step: %d", sessionID, step),
		Retryable: false,
		Metadata: map[string]interface{}{
			"sessionId": sessionID,
			"step":      step,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionExpiredError creates a non-retryable soft error for an expired
// session id. Callers treat the session as absent and start fresh.
func NewSessionExpiredError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionExpired,
		Message:   "Session has expired",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns how many retries the engine grants for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreUnavailable, ErrCodeCatalogUnavailable:
		return 3
	default:
		return 0
	}
}

// IsRetryableErrorCode reports whether an error code is transient.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeStoreUnavailable, ErrCodeCatalogUnavailable:
		return true
	default:
		return false
	}
}

// IsRetryable reports whether err is a retryable StandardError.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory groups error codes for metric labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed:
		return "validation"
	case ErrCodeStoreUnavailable, ErrCodeCatalogUnavailable:
		return "infrastructure"
	case ErrCodeCatalogEmpty, ErrCodeSessionExpired:
		return "soft"
	case ErrCodeUnknownFlowStep:
		return "invariant"
	default:
		return "unknown"
	}
}

// CodeOf extracts the ErrorCode from err, or empty when err is not standard.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}
