package engine

import (
	"math"

	"github.com/terryli710/gotoh/internal/grid"
)

// Epsilon is the tolerance under which two scores are treated as tied.
const Epsilon = 1e-6

// FuzzyEqual reports whether a and b differ by strictly less than Epsilon.
func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// candidate is one term of a recurrence: the predecessor cell and the score
// reached through it.
type candidate struct {
	from  grid.Pointer
	score float64
}

// best returns the maximum candidate score and, in candidate order, every
// predecessor whose score is within Epsilon of it.
func best(cands []candidate) (float64, []grid.Pointer) {
	top := math.Inf(-1)
	for _, c := range cands {
		if c.score > top {
			top = c.score
		}
	}
	ptrs := make([]grid.Pointer, 0, len(cands))
	for _, c := range cands {
		if FuzzyEqual(c.score, top) {
			ptrs = append(ptrs, c.from)
		}
	}
	return top, ptrs
}
