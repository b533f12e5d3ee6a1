package testutil

import (
	"testing"

	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/subst"
)

// Gaps builds a Penalties value in legacy order (dx ex dy ey).
func Gaps(openA, extendA, openB, extendB float64) config.Penalties {
	return config.Penalties{OpenA: openA, ExtendA: extendA, OpenB: openB, ExtendB: extendB}
}

// IdentityConfig builds a Config whose alphabets are the distinct symbols
// of each sequence and whose table scores match for identical symbols and
// mismatch otherwise.
func IdentityConfig(seqA, seqB string, mode config.Mode, gaps config.Penalties, match, mismatch float64) *config.Config {
	alphaA := subst.MustAlphabet(distinct(seqA))
	alphaB := subst.MustAlphabet(distinct(seqB))
	return &config.Config{
		SeqA:      seqA,
		SeqB:      seqB,
		Mode:      mode,
		Gaps:      gaps,
		AlphabetA: alphaA,
		AlphabetB: alphaB,
		DeclaredA: -1,
		DeclaredB: -1,
		Table:     subst.Identity(alphaA, alphaB, match, mismatch),
	}
}

// LoadConfig loads a configuration file and fails the test on error.
func LoadConfig(t testing.TB, path string) *config.Config {
	t.Helper()
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return cfg
}

func distinct(s string) string {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range s {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return string(out)
}
