package render

import (
	"fmt"
	"strings"

	"github.com/terryli710/gotoh/internal/grid"
)

// GapSymbol marks a gap position in an aligned string.
const GapSymbol = '_'

// Alignment is one pair of equal-length aligned strings.
type Alignment struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Len returns the number of alignment columns.
func (a Alignment) Len() int {
	return len([]rune(a.A))
}

// IsEmpty reports whether the alignment has no columns.
func (a Alignment) IsEmpty() bool {
	return a.A == "" && a.B == ""
}

// Renderer renders paths against a fixed pair of sequences.
type Renderer struct {
	a []rune
	b []rune
}

// NewRenderer returns a Renderer for sequences a and b.
func NewRenderer(a, b []rune) *Renderer {
	return &Renderer{a: a, b: b}
}

// Render converts path, ordered from start cell to terminal cell, into an
// Alignment. Rendering is a pure function of the path.
func (r *Renderer) Render(path []grid.Pointer) (Alignment, error) {
	var sa, sb strings.Builder
	for i := len(path) - 1; i >= 0; i-- {
		p := path[i]
		if p.OnBoundary() {
			continue
		}
		if p.Row > len(r.a) || p.Col > len(r.b) {
			return Alignment{}, fmt.Errorf("render: %s outside %dx%d sequences", p, len(r.a), len(r.b))
		}
		switch p.Kind {
		case grid.M:
			sa.WriteRune(r.a[p.Row-1])
			sb.WriteRune(r.b[p.Col-1])
		case grid.Ix:
			sa.WriteRune(r.a[p.Row-1])
			sb.WriteRune(GapSymbol)
		case grid.Iy:
			sa.WriteRune(GapSymbol)
			sb.WriteRune(r.b[p.Col-1])
		default:
			return Alignment{}, fmt.Errorf("render: unknown tape in %s", p)
		}
	}
	return Alignment{A: sa.String(), B: sb.String()}, nil
}

// Unique returns als without empty alignments and without repeats, keeping
// the first occurrence of each.
func Unique(als []Alignment) []Alignment {
	seen := make(map[Alignment]bool, len(als))
	out := make([]Alignment, 0, len(als))
	for _, al := range als {
		if al.IsEmpty() || seen[al] {
			continue
		}
		seen[al] = true
		out = append(out, al)
	}
	return out
}
