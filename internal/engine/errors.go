package engine

import (
	"errors"
	"fmt"
)

// TracebackError represents an error detected during path enumeration.
type TracebackError struct {
	// Code identifies the error category.
	Code TracebackErrorCode

	// Message is a human-readable description.
	Message string

	// Limit is the configured bound that was exceeded, if any.
	Limit int
}

// TracebackErrorCode categorizes traceback errors.
type TracebackErrorCode string

const (
	// ErrCodePathLimit indicates enumeration produced more paths than allowed.
	ErrCodePathLimit TracebackErrorCode = "PATH_LIMIT"
)

// Error implements the error interface.
func (e *TracebackError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsPathLimitError returns true if err is a TracebackError with
// ErrCodePathLimit. Uses errors.As to handle wrapped errors.
func IsPathLimitError(err error) bool {
	var te *TracebackError
	if errors.As(err, &te) {
		return te.Code == ErrCodePathLimit
	}
	return false
}

// NewPathLimitError creates a TracebackError for an exceeded path limit.
func NewPathLimitError(paths, limit int) *TracebackError {
	return &TracebackError{
		Code:    ErrCodePathLimit,
		Message: fmt.Sprintf("traceback produced more than %d paths (%d)", limit, paths),
		Limit:   limit,
	}
}

// FillError reports a cell that could not be filled. It wraps the
// underlying cause, typically a *subst.LookupError.
type FillError struct {
	Row int
	Col int
	Err error
}

// Error implements the error interface.
func (e *FillError) Error() string {
	return fmt.Sprintf("engine: fill (%d,%d): %v", e.Row, e.Col, e.Err)
}

// Unwrap returns the underlying error.
func (e *FillError) Unwrap() error {
	return e.Err
}
