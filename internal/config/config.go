package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/terryli710/gotoh/internal/subst"
)

// Mode selects global or local alignment.
type Mode int

const (
	// Global aligns both sequences end to end.
	Global Mode = iota
	// Local aligns the highest-scoring pair of substrings.
	Local
)

// String returns "global" or "local".
func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "global" or "local" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "global":
		return Global, nil
	case "local":
		return Local, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want global or local)", s)
	}
}

// Penalties holds the four affine gap penalties. Each is subtracted from
// the score, so positive values are costs.
type Penalties struct {
	OpenA   float64 // opening a gap in A's row (dx)
	ExtendA float64 // extending a gap in A's row (ex)
	OpenB   float64 // opening a gap in B's row (dy)
	ExtendB float64 // extending a gap in B's row (ey)
}

// Config is the complete input of one alignment run.
type Config struct {
	SeqA string
	SeqB string
	Mode Mode
	Gaps Penalties

	AlphabetA subst.Alphabet
	AlphabetB subst.Alphabet

	// DeclaredA and DeclaredB are the alphabet sizes stated by the input,
	// or -1 when the format does not state them.
	DeclaredA int
	DeclaredB int

	Table *subst.Table
}

// RunesA returns sequence A as symbols.
func (c *Config) RunesA() []rune { return []rune(c.SeqA) }

// RunesB returns sequence B as symbols.
func (c *Config) RunesB() []rune { return []rune(c.SeqB) }

// Issue is a non-fatal problem found by Check.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Check reports configuration problems that do not prevent loading but may
// surprise at alignment time: alphabet size mismatches, sequence symbols
// outside their alphabet, substitution pairs the sequences need but the
// table lacks, and negative gap penalties.
func (c *Config) Check() []Issue {
	var issues []Issue

	if c.DeclaredA >= 0 && c.DeclaredA != c.AlphabetA.Len() {
		issues = append(issues, Issue{Field: "alphabet_a",
			Message: fmt.Sprintf("declared size %d but %d symbols given", c.DeclaredA, c.AlphabetA.Len())})
	}
	if c.DeclaredB >= 0 && c.DeclaredB != c.AlphabetB.Len() {
		issues = append(issues, Issue{Field: "alphabet_b",
			Message: fmt.Sprintf("declared size %d but %d symbols given", c.DeclaredB, c.AlphabetB.Len())})
	}

	usedA := distinct(c.SeqA)
	usedB := distinct(c.SeqB)
	for _, r := range usedA {
		if !c.AlphabetA.Contains(r) {
			issues = append(issues, Issue{Field: "seq_a", Message: fmt.Sprintf("symbol %q not in alphabet A", r)})
		}
	}
	for _, r := range usedB {
		if !c.AlphabetB.Contains(r) {
			issues = append(issues, Issue{Field: "seq_b", Message: fmt.Sprintf("symbol %q not in alphabet B", r)})
		}
	}

	if c.Table != nil {
		for _, a := range usedA {
			for _, b := range usedB {
				if !c.Table.Has(a, b) {
					issues = append(issues, Issue{Field: "scores", Message: fmt.Sprintf("no score for pair (%q, %q)", a, b)})
				}
			}
		}
	}

	for _, p := range []struct {
		name string
		v    float64
	}{
		{"open_a", c.Gaps.OpenA}, {"extend_a", c.Gaps.ExtendA},
		{"open_b", c.Gaps.OpenB}, {"extend_b", c.Gaps.ExtendB},
	} {
		if p.v < 0 {
			issues = append(issues, Issue{Field: "gaps." + p.name, Message: fmt.Sprintf("negative penalty %g rewards gaps", p.v)})
		}
	}

	return issues
}

// domainConfig separates config fingerprints from other hashes.
const domainConfig = "gotoh/config/v1"

// Fingerprint returns a content hash of the configuration: SHA-256 over the
// domain prefix, a 0x00 separator and the canonical legacy encoding.
// Equal configurations always produce equal fingerprints.
func (c *Config) Fingerprint() (string, error) {
	var sb strings.Builder
	if err := Encode(&sb, c); err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(domainConfig))
	h.Write([]byte{0x00})
	h.Write([]byte(sb.String()))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// normalize trims surrounding space and applies NFC.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// singleSymbol normalizes s and returns its only rune.
func singleSymbol(s string) (rune, bool) {
	r := []rune(normalize(s))
	if len(r) != 1 {
		return 0, false
	}
	return r[0], true
}

// distinct returns the distinct runes of s in first-seen order.
func distinct(s string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range s {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
