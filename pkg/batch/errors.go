package batch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies what went wrong with a batch item.
type ErrorKind int

const (
	// KindValidation indicates the item was rejected before any remote call
	KindValidation ErrorKind = iota
	// KindNotFound indicates an identifier matched nothing
	KindNotFound
	// KindAmbiguous indicates an identifier matched more than one entity
	KindAmbiguous
	// KindCreationFailed indicates the tracker rejected the create call
	KindCreationFailed
	// KindLogFailed indicates the work log call failed
	KindLogFailed
	// KindScopeResolutionFailed indicates the batch-wide project could not be resolved
	KindScopeResolutionFailed
)

// String returns the report label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAmbiguous:
		return "ambiguous"
	case KindCreationFailed:
		return "creation_failed"
	case KindLogFailed:
		return "log_failed"
	case KindScopeResolutionFailed:
		return "scope_resolution_failed"
	default:
		return "unknown"
	}
}

// Candidate is one possible match for an ambiguous identifier.
type Candidate struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// OperationError represents a structured error with kind and suggestion
type OperationError struct {
	Kind       ErrorKind
	Message    string
	Cause      error
	Suggestion string
	Candidates []Candidate
}

// Error implements the error interface
func (e *OperationError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("caused by: %v", e.Cause))
	}

	if e.Suggestion != "" {
		parts = append(parts, fmt.Sprintf("\n💡 %s", e.Suggestion))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific kind
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// AsOperationError extracts an OperationError from err's chain.
func AsOperationError(err error) (*OperationError, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr, true
	}
	return nil, false
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *OperationError {
	return &OperationError{
		Kind:       KindValidation,
		Message:    message,
		Cause:      cause,
		Suggestion: "Check the item fields and try again",
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) *OperationError {
	return &OperationError{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		Suggestion: fmt.Sprintf("Check that the %s exists and you have access to it", resource),
	}
}

// NewAmbiguousError creates an error listing every candidate an identifier matched
func NewAmbiguousError(message string, candidates []Candidate) *OperationError {
	return &OperationError{
		Kind:       KindAmbiguous,
		Message:    message,
		Candidates: candidates,
		Suggestion: "Be more specific or use the exact key",
	}
}

// NewCreationError creates a new creation failure error
func NewCreationError(message string, cause error) *OperationError {
	return &OperationError{
		Kind:    KindCreationFailed,
		Message: message,
		Cause:   cause,
	}
}

// NewWorklogError creates a new work log failure error
func NewWorklogError(message string, cause error) *OperationError {
	return &OperationError{
		Kind:    KindLogFailed,
		Message: message,
		Cause:   cause,
	}
}

// NewScopeError marks a failure to resolve the project shared by a whole batch
func NewScopeError(message string, cause error) *OperationError {
	return &OperationError{
		Kind:       KindScopeResolutionFailed,
		Message:    message,
		Cause:      cause,
		Suggestion: "Fix the project identifier and resubmit the batch",
	}
}
