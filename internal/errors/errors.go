// Package errors provides structured error types for the geosync system.
// All errors include a category, code, message, and fatal flag so the
// batch runner can decide between aborting the run and containing the
// failure to a single pair.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by system component.
type ErrorCategory string

const (
	ErrCategoryConfig    ErrorCategory = "CONFIG"
	ErrCategoryWorkspace ErrorCategory = "WORKSPACE"
	ErrCategorySource    ErrorCategory = "SOURCE"
	ErrCategoryStore     ErrorCategory = "STORE"
	ErrCategorySchema    ErrorCategory = "SCHEMA"
	ErrCategorySync      ErrorCategory = "SYNC"
)

// Error codes for each category.
const (
	// Config codes
	CodeMappingMissing = "MAPPING_MISSING"
	CodeMappingInvalid = "MAPPING_INVALID"

	// Workspace codes
	CodeWorkspaceUnreachable = "WORKSPACE_UNREACHABLE"

	// Source codes
	CodeDescribeFailed = "DESCRIBE_FAILED"
	CodeExportFailed   = "EXPORT_FAILED"

	// Store codes
	CodeLayerNotFound   = "LAYER_NOT_FOUND"
	CodeCreateFailed    = "CREATE_FAILED"
	CodeTruncateBlocked = "TRUNCATE_BLOCKED"
	CodeAppendFailed    = "APPEND_FAILED"
	CodeProjectFailed   = "PROJECT_FAILED"

	// Schema codes
	CodeUnsupportedWKID = "UNSUPPORTED_WKID"

	// Sync codes
	CodePairFailed = "PAIR_FAILED"
)

// SyncError is the structured error type used throughout the system.
type SyncError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error

	// Fatal marks errors that must abort the whole run rather than a
	// single pair. Only configuration and workspace errors are fatal.
	Fatal bool
}

// Error returns a formatted error string.
func (e *SyncError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *SyncError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *SyncError) Is(target error) bool {
	var t *SyncError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new SyncError.
func New(category ErrorCategory, code, message string) *SyncError {
	return &SyncError{
		Category: category,
		Code:     code,
		Message:  message,
		Fatal:    isFatal(category),
	}
}

// Wrap creates a new SyncError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *SyncError {
	return &SyncError{
		Category: category,
		Code:     code,
		Message:  message,
		Cause:    cause,
		Fatal:    isFatal(category),
	}
}

// IsFatal reports whether an error (or its chain) must abort the run.
func IsFatal(err error) bool {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Fatal
	}
	return false
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a SyncError.
func GetCategory(err error) ErrorCategory {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Category
	}
	return ""
}

// isFatal determines whether a category aborts the batch. Everything else
// is contained to its pair.
func isFatal(category ErrorCategory) bool {
	return category == ErrCategoryConfig || category == ErrCategoryWorkspace
}

// Convenience constructors for common errors.

func NewConfigError(code, message string) *SyncError {
	return New(ErrCategoryConfig, code, message)
}

func NewWorkspaceError(message string, cause error) *SyncError {
	return Wrap(ErrCategoryWorkspace, CodeWorkspaceUnreachable, message, cause)
}

func NewSourceError(code, message string, cause error) *SyncError {
	return Wrap(ErrCategorySource, code, message, cause)
}

func NewStoreError(code, message string, cause error) *SyncError {
	return Wrap(ErrCategoryStore, code, message, cause)
}

func NewPairError(message string, cause error) *SyncError {
	return Wrap(ErrCategorySync, CodePairFailed, message, cause)
}
