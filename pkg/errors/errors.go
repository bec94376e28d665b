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

	// Settings errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"

	// Vault errors
	ErrVaultNotFound  ErrorCode = "VAULT_NOT_FOUND"
	ErrVaultOutside   ErrorCode = "VAULT_OUTSIDE"
	ErrVaultWorkspace ErrorCode = "VAULT_WORKSPACE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrCopyCanceled ErrorCode = "COPY_CANCELED"
)

// GardenerError represents a structured error with code and details
type GardenerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GardenerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GardenerError) Unwrap() error {
	return e.Wrapped
}

// Is matches on error code
func (e *GardenerError) Is(target error) bool {
	var targetErr *GardenerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GardenerError with the given code and message
func New(code ErrorCode, message string) *GardenerError {
	return &GardenerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GardenerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GardenerError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *GardenerError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GardenerError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *GardenerError) WithDetail(key string, value interface{}) *GardenerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var gerr *GardenerError
	if errors.As(err, &gerr) {
		return gerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GardenerError
func GetErrorCode(err error) ErrorCode {
	var gerr *GardenerError
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a GardenerError
func GetErrorDetails(err error) map[string]interface{} {
	var gerr *GardenerError
	if errors.As(err, &gerr) {
		return gerr.Details
	}
	return nil
}
