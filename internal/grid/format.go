package grid

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteScores writes the scores of one tape as a left-justified table,
// one grid row per line. Intended for debugging.
func (g *Grid) WriteScores(w io.Writer, kind Kind) error {
	return g.writeTable(w, kind, func(c *Cell) string {
		return FormatScore(c.Score)
	})
}

// WritePointers writes the pointer sets of one tape as a left-justified
// table, e.g. "{M(0,0) Ix(0,0)}", with "{}" for empty sets.
func (g *Grid) WritePointers(w io.Writer, kind Kind) error {
	return g.writeTable(w, kind, func(c *Cell) string {
		parts := make([]string, len(c.Pointers))
		for i, p := range c.Pointers {
			parts[i] = p.String()
		}
		return "{" + strings.Join(parts, " ") + "}"
	})
}

func (g *Grid) writeTable(w io.Writer, kind Kind, format func(*Cell) string) error {
	if int(kind) >= numKinds {
		return &BoundsError{Kind: kind, Rows: g.rows, Cols: g.cols}
	}

	text := make([]string, len(g.cells))
	width := 0
	for i := range g.cells {
		text[i] = format(&g.cells[i][kind])
		if len(text[i]) > width {
			width = len(text[i])
		}
	}
	width += 2

	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			s := text[r*g.cols+c]
			sb.WriteString(s)
			if c < g.cols-1 {
				sb.WriteString(strings.Repeat(" ", width-len(s)))
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("grid: write %s table: %w", kind, err)
	}
	return nil
}

// FormatScore formats a score with the shortest exact representation and at
// least one decimal place ("3" → "3.0", "0.25" → "0.25").
func FormatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
