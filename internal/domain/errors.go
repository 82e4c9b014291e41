package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds of a scan.
var (
	// ErrInvalidPath is returned when the scan directory cannot be used.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotFound is returned when the scan directory does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrNotADirectory is returned when the scan path is not a directory.
	ErrNotADirectory = errors.New("path is not a directory")

	// ErrExtractionFailed is returned when a document's text cannot be extracted.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrInvalidArgument is returned for a malformed term set or filter.
	ErrInvalidArgument = errors.New("invalid argument")
)

// PathError is an invalid scan path. It matches ErrInvalidPath and its Kind.
type PathError struct {
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Path)
}

func (e *PathError) Is(target error) bool {
	return target == ErrInvalidPath || target == e.Kind
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a PathError of kind ErrNotFound.
func NewNotFoundError(path string, err error) *PathError {
	return &PathError{Path: path, Kind: ErrNotFound, Err: err}
}

// NewInaccessibleError creates a PathError for a scan path that cannot be
// inspected or read.
func NewInaccessibleError(path string, err error) *PathError {
	return &PathError{Path: path, Kind: ErrInvalidPath, Err: err}
}

// NewNotADirectoryError creates a PathError of kind ErrNotADirectory.
func NewNotADirectoryError(path string) *PathError {
	return &PathError{Path: path, Kind: ErrNotADirectory}
}

// ExtractionError is a per-document extraction failure.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %q: %v", e.Path, e.Err)
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates an ExtractionError.
func NewExtractionError(path string, err error) *ExtractionError {
	return &ExtractionError{Path: path, Err: err}
}

// ValidationError is a malformed argument with the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid argument '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
