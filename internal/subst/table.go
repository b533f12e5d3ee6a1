package subst

import "sort"

// Pair is an ordered (A, B) symbol pair.
type Pair struct {
	A rune
	B rune
}

// Entry is a scored pair, as returned by Table.Pairs.
type Entry struct {
	Pair
	Score float64
}

// Table is an asymmetric substitution score lookup.
//
// The zero value is not usable; create tables with New or Identity.
type Table struct {
	scores map[Pair]float64
}

// New creates an empty Table.
func New() *Table {
	return &Table{scores: make(map[Pair]float64)}
}

// Identity builds a table covering every pair of alphabetA × alphabetB,
// scoring identical symbols with match and all others with mismatch.
func Identity(alphabetA, alphabetB Alphabet, match, mismatch float64) *Table {
	t := New()
	for _, a := range alphabetA.Symbols() {
		for _, b := range alphabetB.Symbols() {
			if a == b {
				t.Set(a, b, match)
			} else {
				t.Set(a, b, mismatch)
			}
		}
	}
	return t
}

// Set inserts or overwrites the score for the ordered pair (a, b).
func (t *Table) Set(a, b rune, score float64) {
	t.scores[Pair{A: a, B: b}] = score
}

// Get returns the score for the ordered pair (a, b).
// Returns *LookupError if the pair was never set.
func (t *Table) Get(a, b rune) (float64, error) {
	score, ok := t.scores[Pair{A: a, B: b}]
	if !ok {
		return 0, &LookupError{A: a, B: b}
	}
	return score, nil
}

// Has reports whether the ordered pair (a, b) has a score.
func (t *Table) Has(a, b rune) bool {
	_, ok := t.scores[Pair{A: a, B: b}]
	return ok
}

// Len returns the number of configured pairs.
func (t *Table) Len() int {
	return len(t.scores)
}

// Pairs returns every entry ordered by A, then B.
func (t *Table) Pairs() []Entry {
	entries := make([]Entry, 0, len(t.scores))
	for p, s := range t.scores {
		entries = append(entries, Entry{Pair: p, Score: s})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].A != entries[j].A {
			return entries[i].A < entries[j].A
		}
		return entries[i].B < entries[j].B
	})
	return entries
}

// Missing returns the pairs of alphabetA × alphabetB that have no score,
// in alphabet order.
func (t *Table) Missing(alphabetA, alphabetB Alphabet) []Pair {
	var missing []Pair
	for _, a := range alphabetA.Symbols() {
		for _, b := range alphabetB.Symbols() {
			if !t.Has(a, b) {
				missing = append(missing, Pair{A: a, B: b})
			}
		}
	}
	return missing
}
