package subst

import (
	"errors"
	"fmt"
)

// LookupError reports a symbol pair with no configured score.
type LookupError struct {
	A rune // symbol from sequence A
	B rune // symbol from sequence B
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("subst: no score for pair (%q, %q)", e.A, e.B)
}

// IsLookupError returns true if err is or wraps a LookupError.
func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// ErrDuplicateSymbol indicates an alphabet lists the same symbol twice.
var ErrDuplicateSymbol = errors.New("subst: duplicate symbol in alphabet")
