package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates a grid was requested with rows or cols < 1.
var ErrInvalidDimensions = errors.New("grid: rows and cols must be >= 1")

// BoundsError reports an access outside the allocated grid.
// It signals an internal invariant violation; correct recurrence code only
// touches existing neighbor cells.
type BoundsError struct {
	Row  int
	Col  int
	Kind Kind
	Rows int
	Cols int
}

// Error implements the error interface.
func (e *BoundsError) Error() string {
	if int(e.Kind) >= numKinds {
		return fmt.Sprintf("grid: unknown tape %d at (%d,%d)", uint8(e.Kind), e.Row, e.Col)
	}
	return fmt.Sprintf("grid: position (%d,%d) outside %dx%d %s tape", e.Row, e.Col, e.Rows, e.Cols, e.Kind)
}

// IsBoundsError returns true if err is or wraps a BoundsError.
func IsBoundsError(err error) bool {
	var be *BoundsError
	return errors.As(err, &be)
}
