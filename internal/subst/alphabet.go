package subst

import "fmt"

// Alphabet is an ordered set of distinct single-rune symbols.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an alphabet from the runes of s, in order.
// Returns ErrDuplicateSymbol if a rune appears more than once.
func NewAlphabet(s string) (Alphabet, error) {
	a := Alphabet{index: make(map[rune]int)}
	for _, r := range s {
		if _, dup := a.index[r]; dup {
			return Alphabet{}, fmt.Errorf("%w: %q", ErrDuplicateSymbol, r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error. Intended for
// literals in tests and examples.
func MustAlphabet(s string) Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Contains reports whether r is a member of the alphabet.
func (a Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Len returns the number of symbols.
func (a Alphabet) Len() int {
	return len(a.symbols)
}

// Symbols returns a copy of the symbols in declaration order.
func (a Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// String returns the symbols concatenated in declaration order.
func (a Alphabet) String() string {
	return string(a.symbols)
}
