package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by configuration operations.
var (
	// ErrUnsupportedFormat indicates a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrValidationFailed is matched by every ValidationError.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while decoding a configuration source.
type ParseError struct {
	// Path is the file path, or "<memory>" for Parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes one invalid field of a definition.
type ValidationError struct {
	// Path locates the field, e.g. contexts[0].actions[1].type.
	Path string
	// Message describes the problem.
	Message string
	// Value is the offending value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ApplyError locates a failure while building a definition.
type ApplyError struct {
	Context string
	Action  string
	Binding string
	Err     error
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	parts := []string{"context " + quote(e.Context)}
	if e.Action != "" {
		parts = append(parts, "action "+quote(e.Action))
	}
	if e.Binding != "" {
		parts = append(parts, "binding "+quote(e.Binding))
	}
	return fmt.Sprintf("apply %s: %v", strings.Join(parts, " "), e.Err)
}

// Unwrap returns the underlying error.
func (e *ApplyError) Unwrap() error {
	return e.Err
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
