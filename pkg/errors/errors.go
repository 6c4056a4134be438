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

	// Configuration errors
	ErrConfigLoad           ErrorCode = "CONFIG_LOAD"
	ErrConfigParse          ErrorCode = "CONFIG_PARSE"
	ErrMissingConfiguration ErrorCode = "MISSING_CONFIGURATION"

	// Platform errors
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"

	// Execution errors
	ErrSubprocess      ErrorCode = "SUBPROCESS"
	ErrServiceRegister ErrorCode = "SERVICE_REGISTER"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
)

// DetailExitCode is the detail key under which subprocess failures record the
// child's exit status.
const DetailExitCode = "exitCode"

// DotsetupError represents a structured error with code and details
type DotsetupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotsetupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotsetupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotsetupError) Is(target error) bool {
	var targetErr *DotsetupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotsetupError with the given code and message
func New(code ErrorCode, message string) *DotsetupError {
	return &DotsetupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotsetupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotsetupError {
	return &DotsetupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotsetupError
func Wrap(err error, code ErrorCode, message string) *DotsetupError {
	if err == nil {
		return nil
	}
	return &DotsetupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotsetupError {
	if err == nil {
		return nil
	}
	return &DotsetupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotsetupError) WithDetail(key string, value interface{}) *DotsetupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dsErr *DotsetupError
	if errors.As(err, &dsErr) {
		return dsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotsetupError
func GetErrorCode(err error) ErrorCode {
	var dsErr *DotsetupError
	if errors.As(err, &dsErr) {
		return dsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotsetupError
func GetErrorDetails(err error) map[string]interface{} {
	var dsErr *DotsetupError
	if errors.As(err, &dsErr) {
		return dsErr.Details
	}
	return nil
}

// ExitCode maps an error to a process exit status. Subprocess failures keep
// the child's exit code; everything else exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsErrorCode(err, ErrSubprocess) {
		if code, ok := GetErrorDetails(err)[DetailExitCode].(int); ok && code > 0 {
			return code
		}
	}
	return 1
}
