package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Pattern and matching errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"
	ErrGlobInvalid    ErrorCode = "GLOB_INVALID"
	ErrLexerInvalid   ErrorCode = "LEXER_INVALID"

	// Rule errors
	ErrRuleNotFound ErrorCode = "RULE_NOT_FOUND"
	ErrRuleInvalid  ErrorCode = "RULE_INVALID"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// RegionsError represents a structured error with code and details
type RegionsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RegionsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RegionsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RegionsError) Is(target error) bool {
	var targetErr *RegionsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RegionsError with the given code and message
func New(code ErrorCode, message string) *RegionsError {
	return &RegionsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RegionsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RegionsError {
	return &RegionsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RegionsError
func Wrap(err error, code ErrorCode, message string) *RegionsError {
	if err == nil {
		return nil
	}
	return &RegionsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RegionsError {
	if err == nil {
		return nil
	}
	return &RegionsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RegionsError) WithDetail(key string, value interface{}) *RegionsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var regErr *RegionsError
	if errors.As(err, &regErr) {
		return regErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RegionsError
func GetErrorCode(err error) ErrorCode {
	var regErr *RegionsError
	if errors.As(err, &regErr) {
		return regErr.Code
	}
	return ErrUnknown
}
