package analysis

import (
	"strings"

	"github.com/terryli710/gotoh/internal/render"
)

// Location gives the offsets, in symbols, at which the ungapped rows of an
// alignment occur in the input sequences; -1 when a row does not occur.
type Location struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Locate finds the first occurrence of each ungapped row of al in seqA and
// seqB.
func Locate(al render.Alignment, seqA, seqB string) Location {
	return Location{
		A: runeIndex(seqA, ungap(al.A)),
		B: runeIndex(seqB, ungap(al.B)),
	}
}

func ungap(s string) string {
	return strings.ReplaceAll(s, string(render.GapSymbol), "")
}

// runeIndex is strings.Index counted in runes.
func runeIndex(s, sub string) int {
	i := strings.Index(s, sub)
	if i < 0 {
		return -1
	}
	return len([]rune(s[:i]))
}
