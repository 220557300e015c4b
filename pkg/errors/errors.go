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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors. These are fatal and raised before any
	// filesystem action takes place.
	ErrConfiguration ErrorCode = "CONFIGURATION"
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"

	// Catalog errors
	ErrCatalogLoad  ErrorCode = "CATALOG_LOAD"
	ErrCatalogEntry ErrorCode = "CATALOG_ENTRY"

	// Source tree errors abort the whole run
	ErrSourceRead  ErrorCode = "SOURCE_READ"
	ErrSourceFetch ErrorCode = "SOURCE_FETCH"

	// Walk warnings
	ErrSymlinkSkipped ErrorCode = "SYMLINK_SKIPPED"
	ErrPathCollision  ErrorCode = "PATH_COLLISION"

	// Destination errors are isolated per file
	ErrDestinationRead ErrorCode = "DESTINATION_READ"
	ErrWrite           ErrorCode = "WRITE"

	// Version control
	ErrVCS ErrorCode = "VCS"
)

// LiscafError represents a structured error with code and details
type LiscafError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LiscafError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LiscafError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LiscafError) Is(target error) bool {
	var targetErr *LiscafError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LiscafError with the given code and message
func New(code ErrorCode, message string) *LiscafError {
	return &LiscafError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LiscafError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LiscafError {
	return &LiscafError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LiscafError
func Wrap(err error, code ErrorCode, message string) *LiscafError {
	if err == nil {
		return nil
	}
	return &LiscafError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LiscafError {
	if err == nil {
		return nil
	}
	return &LiscafError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LiscafError) WithDetail(key string, value interface{}) *LiscafError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var liscafErr *LiscafError
	if errors.As(err, &liscafErr) {
		return liscafErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LiscafError
func GetErrorCode(err error) ErrorCode {
	var liscafErr *LiscafError
	if errors.As(err, &liscafErr) {
		return liscafErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LiscafError
func GetErrorDetails(err error) map[string]interface{} {
	var liscafErr *LiscafError
	if errors.As(err, &liscafErr) {
		return liscafErr.Details
	}
	return nil
}

// IsFatal reports whether an error must abort a run before anything is
// committed to the destination.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrDestinationRead, ErrWrite, ErrSymlinkSkipped, ErrPathCollision:
		return false
	}
	return err != nil
}
