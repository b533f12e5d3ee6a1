package config

import (
	"errors"
	"fmt"
)

// FormatError reports malformed configuration input.
type FormatError struct {
	// Line is the 1-based input line, or 0 when not tied to a line.
	Line int

	// Field names the configuration element being parsed (e.g. "gaps").
	Field string

	// Message is a human-readable description.
	Message string

	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("config: line %d: %s: %s", e.Line, e.Field, msg)
	}
	return fmt.Sprintf("config: %s: %s", e.Field, msg)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError returns true if err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func formatErrorf(line int, field, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Field: field, Message: fmt.Sprintf(format, args...)}
}
