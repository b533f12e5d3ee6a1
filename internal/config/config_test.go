package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_String(t *testing.T) {
	assert.Equal(t, "global", Global.String())
	assert.Equal(t, "local", Local.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Local")
	require.NoError(t, err)
	assert.Equal(t, Local, m)

	m, err = ParseMode(" global ")
	require.NoError(t, err)
	assert.Equal(t, Global, m)

	_, err = ParseMode("glocal")
	assert.Error(t, err)
}

func TestCheck_Clean(t *testing.T) {
	cfg, err := LoadFile("testdata/identity.input")
	require.NoError(t, err)
	assert.Empty(t, cfg.Check())
}

func TestCheck_Issues(t *testing.T) {
	input := "abz\nab\n0\n-1 0 0 0\n3\nab\n2\nab\n1 1 a a 1\n1 2 a b 0\n"
	cfg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	issues := cfg.Check()
	fields := make([]string, len(issues))
	for i, is := range issues {
		fields[i] = is.Field
	}

	assert.Contains(t, fields, "alphabet_a")   // declared 3, got 2
	assert.Contains(t, fields, "seq_a")        // z outside alphabet
	assert.Contains(t, fields, "scores")       // (b,a), (b,b), (z,*) missing
	assert.Contains(t, fields, "gaps.open_a")  // negative
	assert.NotContains(t, fields, "alphabet_b")
}

func TestFingerprint_Deterministic(t *testing.T) {
	a, err := LoadFile("testdata/identity.input")
	require.NoError(t, err)
	b, err := LoadFile("testdata/identity.yaml")
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	b.Mode = Local
	fc, err := b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}

func TestFormatError_Message(t *testing.T) {
	err := formatErrorf(4, "gaps", "expected %d", 4)
	assert.Equal(t, "config: line 4: gaps: expected 4", err.Error())

	err = &FormatError{Field: "cue", Message: "bad"}
	assert.Equal(t, "config: cue: bad", err.Error())
}
