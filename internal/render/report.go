package render

import (
	"bufio"
	"io"
	"strconv"

	"github.com/terryli710/gotoh/internal/grid"
)

// FormatScore formats a best score rounded to one decimal place.
func FormatScore(v float64) string {
	return strconv.FormatFloat(grid.Round(v, 1), 'f', 1, 64)
}

// WriteReport writes the alignment report:
//
//	<score>
//	<blank>
//	<A1>
//	<B1>
//	<blank>
//	<A2>
//	<B2>
//
// Alignments are separated by a single blank line; there is no blank line
// after the last one.
func WriteReport(w io.Writer, score float64, als []Alignment) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(FormatScore(score))
	bw.WriteString("\n\n")
	for i, al := range als {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(al.A)
		bw.WriteString("\n")
		bw.WriteString(al.B)
		bw.WriteString("\n")
	}
	return bw.Flush()
}
