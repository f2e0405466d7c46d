package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Interview specific errors
	CodeSessionNotFound      ErrorCode = "SESSION_NOT_FOUND"
	CodeConflict             ErrorCode = "CONFLICT"
	CodeOutOfRange           ErrorCode = "OUT_OF_RANGE"
	CodeNoQuestionsAvailable ErrorCode = "NO_QUESTIONS_AVAILABLE"
	CodeEmbeddingService     ErrorCode = "EMBEDDING_SERVICE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Session not found: %s", sessionID), nil)
}

func NewConflictError(message string) *DomainError {
	return NewError(CodeConflict, message, nil)
}

func NewOutOfRangeError(field string, value, min, max int) *DomainError {
	err := NewError(CodeOutOfRange, fmt.Sprintf("%s out of range: %d (expected %d..%d)", field, value, min, max), nil)
	err.Context = map[string]interface{}{"field": field, "value": value, "min": min, "max": max}
	return err
}

func NewNoQuestionsAvailableError(categories []string) *DomainError {
	return NewError(CodeNoQuestionsAvailable,
		fmt.Sprintf("No questions available for categories: %s", strings.Join(categories, ", ")), nil)
}

func NewEmbeddingServiceError(cause error) *DomainError {
	return NewError(CodeEmbeddingService, "Failed to generate embedding", cause)
}
