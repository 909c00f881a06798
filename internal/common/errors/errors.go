// internal/common/errors/errors.go

// Package errors provides the standardized error taxonomy for the console API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeOperationFailed is the single externally visible failure of a model-access task.
	ErrCodeOperationFailed ErrorCode = "OPERATION_FAILED"

	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeRequestInFlight ErrorCode = "REQUEST_IN_FLIGHT"
	ErrCodeTaskNotFound    ErrorCode = "TASK_NOT_FOUND"
	ErrCodeTaskDisabled    ErrorCode = "TASK_DISABLED"
	ErrCodeCardNotFound    ErrorCode = "CARD_NOT_FOUND"
	ErrCodeRateLimited     ErrorCode = "RATE_LIMITED"
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeStateStore      ErrorCode = "STATE_STORE_FAILED"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// ErrOperationFailed matches any StandardError carrying ErrCodeOperationFailed via errors.Is.
var ErrOperationFailed = &StandardError{Code: ErrCodeOperationFailed, Message: "Operation failed"}

// ErrRequestInFlight matches any StandardError carrying ErrCodeRequestInFlight.
var ErrRequestInFlight = &StandardError{Code: ErrCodeRequestInFlight, Message: "Request in flight"}

// StandardError represents a structured application error. Only Code and Message
// are ever returned to API callers; Details stays in the logs.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is reports code equality so sentinel values such as ErrOperationFailed match.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata attaches a key/value pair for logging.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewOperationFailedError builds the uniform task failure. message is the static,
// task-naming description shown to callers; cause is kept for logs only.
func NewOperationFailedError(task, message string, cause error) *StandardError {
	details := fmt.Sprintf("task: %s", task)
	if cause != nil {
		details = fmt.Sprintf("task: %s, error: %s", task, cause.Error())
	}
	return &StandardError{
		Code:      ErrCodeOperationFailed,
		Message:   message,
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"task": task},
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidInputError creates a non-retryable input validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestInFlightError signals that the same card already has an outstanding call.
func NewRequestInFlightError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestInFlight,
		Message:   "A request for this card is already in progress",
		Details:   fmt.Sprintf("key: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewTaskNotFoundError(taskType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTaskNotFound,
		Message:   "Unknown task type",
		Details:   fmt.Sprintf("taskType: %s", taskType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewTaskDisabledError(taskType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTaskDisabled,
		Message:   "Task is disabled",
		Details:   fmt.Sprintf("taskType: %s", taskType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewCardNotFoundError(cardID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCardNotFound,
		Message:   "Unknown API card",
		Details:   fmt.Sprintf("cardId: %s", cardID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewRateLimitedError(client string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests, slow down",
		Details:   fmt.Sprintf("client: %s", client),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewPayloadTooLargeError(limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadTooLarge,
		Message:   "Request body too large",
		Details:   fmt.Sprintf("limit: %d bytes", limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStateStoreError wraps a failure of the request-state backend.
func NewStateStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStateStore,
		Message:   "Request state unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError creates a generic internal error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError unwraps err to a StandardError if one is in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HTTPStatus maps an error code onto the status written by the API layer.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeOperationFailed:
		return http.StatusBadGateway
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeRequestInFlight:
		return http.StatusConflict
	case ErrCodeTaskNotFound, ErrCodeCardNotFound:
		return http.StatusNotFound
	case ErrCodeTaskDisabled:
		return http.StatusForbidden
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeStateStore:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory groups error codes for metrics labels.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeOperationFailed:
		return "MODEL"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "TOO_LARGE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND") || strings.Contains(codeStr, "DISABLED"):
		return "ROUTING"
	case code == ErrCodeRequestInFlight || code == ErrCodeRateLimited:
		return "THROTTLING"
	case strings.Contains(codeStr, "STATE"):
		return "STATE"
	default:
		return "OTHER"
	}
}
