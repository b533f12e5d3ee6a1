package grid

import "fmt"

// Kind identifies one of the three recurrence tapes.
type Kind uint8

const (
	// M holds alignments ending with A[i-1] aligned to B[j-1].
	M Kind = iota
	// Ix holds alignments ending with A[i-1] against a gap in B.
	Ix
	// Iy holds alignments ending with B[j-1] against a gap in A.
	Iy
)

// numKinds is the number of tapes per record.
const numKinds = 3

// Kinds lists every tape in canonical order.
var Kinds = [numKinds]Kind{M, Ix, Iy}

// String returns "M", "Ix" or "Iy".
func (k Kind) String() string {
	switch k {
	case M:
		return "M"
	case Ix:
		return "Ix"
	case Iy:
		return "Iy"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses the String form of a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "M", "m":
		return M, nil
	case "Ix", "ix", "IX":
		return Ix, nil
	case "Iy", "iy", "IY":
		return Iy, nil
	default:
		return 0, fmt.Errorf("grid: unknown tape %q (want M, Ix or Iy)", s)
	}
}

// Pointer addresses one cell of one tape.
// Pointers compare by value.
type Pointer struct {
	Row  int
	Col  int
	Kind Kind
}

// String formats the pointer as Kind(row,col), e.g. "Iy(4,3)".
func (p Pointer) String() string {
	return fmt.Sprintf("%s(%d,%d)", p.Kind, p.Row, p.Col)
}

// OnBoundary reports whether the pointer addresses row 0 or column 0.
func (p Pointer) OnBoundary() bool {
	return p.Row == 0 || p.Col == 0
}
