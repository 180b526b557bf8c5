// Package apierror provides standardized error handling for the HTTP
// services: machine-readable codes, HTTP status mapping, and a JSON
// rendering shared by every handler.
package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodePromptRequired ErrorCode = "PROMPT_REQUIRED"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	ErrCodeScreenFailed       ErrorCode = "SCREEN_FAILED"
	ErrCodeSearchFailed       ErrorCode = "SEARCH_FAILED"
	ErrCodeEnrichFailed       ErrorCode = "ENRICH_FAILED"
	ErrCodePeopleSearchFailed ErrorCode = "PEOPLE_SEARCH_FAILED"

	ErrCodeLLMUnavailable ErrorCode = "LLM_UNAVAILABLE"
	ErrCodeConfigMissing  ErrorCode = "CONFIG_MISSING"
	ErrCodeToolNotFound   ErrorCode = "TOOL_NOT_FOUND"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the canonical error type crossing package boundaries.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a StandardError with the current timestamp.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// Wrap attaches an underlying cause as details.
func Wrap(code ErrorCode, message string, err error) *StandardError {
	stdErr := New(code, message)
	if err != nil {
		stdErr.Details = err.Error()
	}
	return stdErr
}

// HTTPStatus maps an error code to the status the caller sees.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodePromptRequired, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeToolNotFound:
		return http.StatusNotFound
	case ErrCodeLLMUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON renders the error as the generic JSON error body.
func WriteJSON(w http.ResponseWriter, stdErr *StandardError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(stdErr.HTTPStatus())
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": stdErr.Message,
		"code":  stdErr.Code,
	})
}

// Normalize ensures any error becomes a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return Wrap(ErrCodeInternal, "Unexpected error", err)
}
