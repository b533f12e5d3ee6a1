package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/render"
)

var (
	// ErrLengthMismatch is returned when the two aligned strings differ in
	// length.
	ErrLengthMismatch = errors.New("analysis: aligned strings differ in length")

	// ErrGapColumn is returned for a column with a gap in both rows.
	ErrGapColumn = errors.New("analysis: column has a gap in both rows")
)

// column classifies one alignment column.
type column int

const (
	colNone column = iota // before the first column
	colMatch
	colGapB // symbol from A against a gap in B
	colGapA // gap in A against a symbol from B
)

func classify(a, b rune) column {
	switch {
	case a == render.GapSymbol:
		return colGapA
	case b == render.GapSymbol:
		return colGapB
	default:
		return colMatch
	}
}

// Rescore computes the score of al directly from its columns and cfg:
// the substitution score of every matched column, minus OpenB for the first
// and ExtendB for each further column of a run of gaps in B, and likewise
// OpenA/ExtendA for gaps in A. A run that switches directly from one row to
// the other opens a new gap.
//
// A run that starts in the first column continues from the boundary, which
// scores 0 in every tape, so its first position costs the smaller of the
// open and extend penalties.
func Rescore(al render.Alignment, cfg *config.Config) (float64, error) {
	a, b := []rune(al.A), []rune(al.B)
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}

	gaps := cfg.Gaps
	total := 0.0
	prev := colNone
	for i := range a {
		cur := classify(a[i], b[i])
		switch cur {
		case colMatch:
			s, err := cfg.Table.Get(a[i], b[i])
			if err != nil {
				return 0, fmt.Errorf("column %d: %w", i+1, err)
			}
			total += s
		case colGapB:
			total -= gapCost(prev, cur, gaps.OpenB, gaps.ExtendB)
		case colGapA:
			if b[i] == render.GapSymbol {
				return 0, fmt.Errorf("column %d: %w", i+1, ErrGapColumn)
			}
			total -= gapCost(prev, cur, gaps.OpenA, gaps.ExtendA)
		}
		prev = cur
	}
	return total, nil
}

func gapCost(prev, cur column, open, extend float64) float64 {
	switch prev {
	case cur:
		return extend
	case colNone:
		return math.Min(open, extend)
	default:
		return open
	}
}
