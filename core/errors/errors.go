// Package errors provides the error taxonomy and warning types used across quizpack.
//
// Fatal errors (FormatError, IOError, SpliceError) abort a conversion.
// RenderError is recovered where it occurs and reported as a Warning.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrFormat indicates malformed source input
	ErrFormat = errors.New("invalid format")
	// ErrRender indicates a content renderer failed
	ErrRender = errors.New("render failed")
	// ErrSplice indicates a markup fragment could not be inserted into a document
	ErrSplice = errors.New("splice failed")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
)

// FormatError reports source text that cannot be turned into a quiz.
// The message is surfaced to users verbatim.
type FormatError struct {
	Path    string // Source file, if known
	Line    int    // 1-based line number, 0 when not applicable
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (e *FormatError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrFormat
}

// Is lets errors.Is match ErrFormat even when a cause is wrapped.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// RenderError reports a failed math, music or highlight rendering.
type RenderError struct {
	Renderer string // "math", "music", "highlight"
	Input    string // Source snippet, possibly truncated
	Err      error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s rendering failed: %v", e.Renderer, e.Err)
	}
	return fmt.Sprintf("%s rendering failed", e.Renderer)
}

func (e *RenderError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrRender
}

func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// SpliceError reports a fragment that could not be parsed into the output tree.
type SpliceError struct {
	Source string // Producer of the fragment, e.g. "highlight:go"
	Err    error
}

func (e *SpliceError) Error() string {
	return fmt.Sprintf("cannot splice %s fragment: %v", e.Source, e.Err)
}

func (e *SpliceError) Unwrap() error {
	return e.Err
}

func (e *SpliceError) Is(target error) bool {
	return target == ErrSplice
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewFormat creates a FormatError
func NewFormat(message string) *FormatError {
	return &FormatError{Message: message}
}

// NewFormatAt creates a FormatError pointing at a source line
func NewFormatAt(line int, message string) *FormatError {
	return &FormatError{Line: line, Message: message}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewRender creates a RenderError
func NewRender(renderer, input string, err error) *RenderError {
	return &RenderError{
		Renderer: renderer,
		Input:    snippet(input),
		Err:      err,
	}
}

// NewSplice creates a SpliceError
func NewSplice(source string, err error) *SpliceError {
	return &SpliceError{
		Source: source,
		Err:    err,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

const maxSnippet = 60

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= maxSnippet {
		return s
	}
	return string(r[:maxSnippet]) + "..."
}
