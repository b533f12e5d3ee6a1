package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terryli710/gotoh/internal/render"
)

func TestParseReport_RoundTrip(t *testing.T) {
	als := []render.Alignment{{A: "aaaa", B: "a_aa"}, {A: "aaa", B: "aaa"}}
	var buf bytes.Buffer
	require.NoError(t, render.WriteReport(&buf, 3, als))

	rep, err := ParseReport(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3.0, rep.Score)
	assert.Equal(t, als, rep.Alignments)
}

func TestParseReport_TrailingBlank(t *testing.T) {
	rep, err := ParseReport(strings.NewReader("-1.5\n\nab\na_\n\n"))
	require.NoError(t, err)
	assert.Equal(t, -1.5, rep.Score)
	assert.Equal(t, []render.Alignment{{A: "ab", B: "a_"}}, rep.Alignments)
}

func TestParseReport_ScoreOnly(t *testing.T) {
	rep, err := ParseReport(strings.NewReader("0.0\n\n"))
	require.NoError(t, err)
	assert.Empty(t, rep.Alignments)
}

func TestParseReport_Errors(t *testing.T) {
	_, err := ParseReport(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseReport(strings.NewReader("high\n\nab\nab\n"))
	assert.Error(t, err)

	_, err = ParseReport(strings.NewReader("1.0\n\nab\nab\nab\n"))
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	left := []render.Alignment{{A: "ab", B: "ab"}, {A: "b", B: "b"}, {A: "a_", B: "ab"}}
	right := []render.Alignment{{A: "ab", B: "ab"}, {A: "_b", B: "ab"}}

	d := Compare(left, right)
	assert.False(t, d.Equal())
	assert.Equal(t, []render.Alignment{{A: "a_", B: "ab"}, {A: "b", B: "b"}}, d.OnlyLeft)
	assert.Equal(t, []render.Alignment{{A: "_b", B: "ab"}}, d.OnlyRight)

	same := Compare(left, []render.Alignment{left[2], left[1], left[0], left[0]})
	assert.True(t, same.Equal())
}

func TestLocate(t *testing.T) {
	loc := Locate(render.Alignment{A: "ATG_C", B: "A_GGC"}, "AATGC", "AGGC")
	assert.Equal(t, Location{A: 1, B: 0}, loc)

	loc = Locate(render.Alignment{A: "βγ", B: "zz"}, "αβγ", "y")
	assert.Equal(t, Location{A: 1, B: -1}, loc)
}
