package analysis

import "github.com/terryli710/gotoh/internal/render"

// Stats summarizes one alignment.
type Stats struct {
	Length        int     `json:"length"`
	Identities    int     `json:"identities"`
	Mismatches    int     `json:"mismatches"`
	Gaps          int     `json:"gaps"`
	GapRegions    int     `json:"gap_regions"`
	MeanGapLength float64 `json:"mean_gap_length"`
}

// Identity returns the percentage of columns that are identities.
func (s Stats) Identity() float64 {
	if s.Length == 0 {
		return 0
	}
	return 100 * float64(s.Identities) / float64(s.Length)
}

// Summarize counts the columns of al. A gap region is a maximal run of
// columns with gaps in the same row; gaps are never counted as mismatches.
func Summarize(al render.Alignment) Stats {
	a, b := []rune(al.A), []rune(al.B)
	n := min(len(a), len(b))

	st := Stats{Length: n}
	prev := colNone
	for i := 0; i < n; i++ {
		cur := classify(a[i], b[i])
		switch cur {
		case colMatch:
			if a[i] == b[i] {
				st.Identities++
			} else {
				st.Mismatches++
			}
		default:
			st.Gaps++
			if cur != prev {
				st.GapRegions++
			}
		}
		prev = cur
	}
	if st.GapRegions > 0 {
		st.MeanGapLength = float64(st.Gaps) / float64(st.GapRegions)
	}
	return st
}
