package init

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of initialization error
type ErrorType int

const (
	// ErrorTypeConfig indicates a configuration file error
	ErrorTypeConfig ErrorType = iota
	// ErrorTypeConnection indicates a Jira connection or API error
	ErrorTypeConnection
	// ErrorTypeFileSystem indicates a file system error
	ErrorTypeFileSystem
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation
)

// InitError represents an initialization error with context
type InitError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *InitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *InitError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error
func NewConfigError(message string, cause error) *InitError {
	return &InitError{
		Type:    ErrorTypeConfig,
		Message: message,
		Cause:   cause,
	}
}

// NewConnectionError creates a new Jira connection error
func NewConnectionError(message string, cause error) *InitError {
	return &InitError{
		Type:    ErrorTypeConnection,
		Message: message,
		Cause:   cause,
	}
}

// NewFileSystemError creates a new file system error
func NewFileSystemError(message string, cause error) *InitError {
	return &InitError{
		Type:    ErrorTypeFileSystem,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *InitError {
	return &InitError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   nil,
	}
}

// Hint returns remediation advice for an initialization error, or an empty
// string when there is nothing useful to suggest.
func Hint(err error) string {
	var initErr *InitError
	if !errors.As(err, &initErr) {
		return ""
	}

	switch initErr.Type {
	case ErrorTypeConfig:
		return "Check the .jira-mcp.yml file format and try again."
	case ErrorTypeConnection:
		return "Check your network connection and that JIRA_URL, JIRA_USERNAME and JIRA_API_TOKEN are set correctly."
	case ErrorTypeFileSystem:
		return "Check file permissions and disk space."
	case ErrorTypeValidation:
		return "Check your input values and try again."
	default:
		return ""
	}
}
