package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures so transports and callers can react without string matching.
type ErrorCode string

const (
	ErrCodeStorage      ErrorCode = "STORAGE"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeBusiness     ErrorCode = "BUSINESS"
	ErrCodeNetwork      ErrorCode = "NETWORK"
	ErrCodeUnknown      ErrorCode = "UNKNOWN"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrCategoryNotFound   = NewError(ErrCodeNotFound, "category not found")
	ErrItemNotFound       = NewError(ErrCodeNotFound, "item not found")
	ErrSimpleItemNotFound = NewError(ErrCodeNotFound, "simple item not found")
	ErrInvalidPayload     = NewError(ErrCodeValidation, "invalid payload")
	ErrInvalidImport      = NewError(ErrCodeValidation, "invalid import document")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
)

// IsDomainError reports whether any domain error in the chain carries code.
func IsDomainError(err error, code ErrorCode) bool {
	for err != nil {
		var dErr *Error
		if !errors.As(err, &dErr) {
			return false
		}
		if dErr.Code == code {
			return true
		}
		err = dErr.Err
	}
	return false
}

// CodeOf returns the code of the outermost domain error, or UNKNOWN.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeUnknown
}

var defaultMessages = map[ErrorCode]string{
	ErrCodeStorage:    "data could not be stored, check storage permissions and free space",
	ErrCodeNetwork:    "network connection failed",
	ErrCodeValidation: "validation failed, check the input",
	ErrCodeBusiness:   "operation failed, try again later",
	ErrCodeUnknown:    "unknown error",
}

// UserMessage returns the text shown to a user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var dErr *Error
	if errors.As(err, &dErr) {
		if dErr.Message != "" {
			return dErr.Message
		}
		if msg, ok := defaultMessages[dErr.Code]; ok {
			return msg
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return defaultMessages[ErrCodeUnknown]
}

// Decision is the outcome of an advisory business rule check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}
