package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode classifies a failure for the HTTP boundary
type ErrorCode string

const (
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeUnprocessable ErrorCode = "UNPROCESSABLE"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// DomainError carries a code, a message for the logs and the underlying
// cause. Neither message nor cause is ever written to a client.
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
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

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewUnprocessableError(message string, cause error) *DomainError {
	return NewError(CodeUnprocessable, message, cause)
}

func NewInvalidInputError(message string, cause error) *DomainError {
	return NewError(CodeInvalidInput, message, cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewCategoryNotFoundError(categoryID int64) *DomainError {
	return NewNotFoundError(fmt.Sprintf("category %d not found", categoryID))
}

func NewPageNotFoundError(page int) *DomainError {
	return NewNotFoundError(fmt.Sprintf("page %d is out of range", page))
}

// ValidationError describes one rejected field
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors is returned as a single error when one or more fields fail
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Reason: "is required"}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Reason: fmt.Sprintf("%d is outside %d..%d", value, min, max)}
}

func NewUnknownReferenceError(field string, value int64) ValidationError {
	return ValidationError{Field: field, Reason: fmt.Sprintf("%d does not exist", value)}
}
