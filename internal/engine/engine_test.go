package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/grid"
	"github.com/terryli710/gotoh/internal/subst"
	"github.com/terryli710/gotoh/internal/testutil"
)

func p(k grid.Kind, row, col int) grid.Pointer {
	return grid.Pointer{Row: row, Col: col, Kind: k}
}

func newEngine(t *testing.T, cfg *config.Config, opts ...Option) *Engine {
	t.Helper()
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e
}

func setScore(t *testing.T, e *Engine, k grid.Kind, row, col int, v float64) {
	t.Helper()
	require.NoError(t, e.grid.SetScore(row, col, k, v))
}

func score(t *testing.T, e *Engine, k grid.Kind, row, col int) float64 {
	t.Helper()
	v, err := e.grid.Score(row, col, k)
	require.NoError(t, err)
	return v
}

func pointers(t *testing.T, e *Engine, k grid.Kind, row, col int) []grid.Pointer {
	t.Helper()
	ps, err := e.grid.Pointers(row, col, k)
	require.NoError(t, err)
	return ps
}

func TestNew(t *testing.T) {
	cfg := testutil.IdentityConfig("AATGC", "AGGC", config.Global, testutil.Gaps(0.1, 0.5, 0.6, 0.3), 1, -1)
	e := newEngine(t, cfg)

	assert.Equal(t, 6, e.Grid().Rows())
	assert.Equal(t, 5, e.Grid().Cols())
	assert.False(t, e.Filled())
	assert.Same(t, cfg, e.Config())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&config.Config{SeqA: "a", SeqB: "a"})
	assert.Error(t, err)
}

func TestFillCell_Ix(t *testing.T) {
	cfg := testutil.IdentityConfig("aaaa", "aaa", config.Global, testutil.Gaps(0, 0, 1, 0.5), 1, -1)
	e := newEngine(t, cfg)
	setScore(t, e, grid.M, 2, 2, 3)
	setScore(t, e, grid.Ix, 2, 2, 2.5)

	require.NoError(t, e.fillCell(3, 2))

	assert.Equal(t, 2.0, score(t, e, grid.Ix, 3, 2))
	assert.Equal(t, []grid.Pointer{p(grid.M, 2, 2), p(grid.Ix, 2, 2)}, pointers(t, e, grid.Ix, 3, 2))
}

func TestFillCell_M(t *testing.T) {
	cfg := testutil.IdentityConfig("aaaa", "aaa", config.Global, testutil.Gaps(0, 0, 0, 0), 1, -1)
	e := newEngine(t, cfg)
	setScore(t, e, grid.M, 2, 2, 3)
	setScore(t, e, grid.Ix, 2, 2, 2.5)
	setScore(t, e, grid.Iy, 2, 2, 5)

	require.NoError(t, e.fillCell(3, 3))

	assert.Equal(t, 6.0, score(t, e, grid.M, 3, 3))
	assert.Equal(t, []grid.Pointer{p(grid.Iy, 2, 2)}, pointers(t, e, grid.M, 3, 3))
}

func TestFillCell_Iy(t *testing.T) {
	cfg := testutil.IdentityConfig("aaaa", "aaa", config.Global, testutil.Gaps(1, 0.5, 0, 0), 1, -1)
	e := newEngine(t, cfg)
	setScore(t, e, grid.M, 2, 1, 3)
	setScore(t, e, grid.Iy, 2, 1, 2.5)

	require.NoError(t, e.fillCell(2, 2))

	assert.Equal(t, 2.0, score(t, e, grid.Iy, 2, 2))
	assert.Equal(t, []grid.Pointer{p(grid.M, 2, 1), p(grid.Iy, 2, 1)}, pointers(t, e, grid.Iy, 2, 2))
}

func TestFillCell_LocalFloor(t *testing.T) {
	cfg := testutil.IdentityConfig("ab", "cd", config.Local, testutil.Gaps(1, 1, 1, 1), 1, -1)
	e := newEngine(t, cfg)

	require.NoError(t, e.fillCell(1, 1))

	for _, k := range grid.Kinds {
		assert.Equal(t, 0.0, score(t, e, k, 1, 1), "%s", k)
		assert.Nil(t, pointers(t, e, k, 1, 1), "%s", k)
	}
}

func TestFillCell_GlobalKeepsNegative(t *testing.T) {
	cfg := testutil.IdentityConfig("ab", "cd", config.Global, testutil.Gaps(1, 1, 1, 1), 1, -1)
	e := newEngine(t, cfg)

	require.NoError(t, e.fillCell(1, 1))

	assert.Equal(t, -1.0, score(t, e, grid.M, 1, 1))
	assert.Equal(t, []grid.Pointer{p(grid.M, 0, 0), p(grid.Ix, 0, 0), p(grid.Iy, 0, 0)}, pointers(t, e, grid.M, 1, 1))
	// Open and extend are equal, so both predecessors tie.
	assert.Equal(t, []grid.Pointer{p(grid.M, 0, 1), p(grid.Ix, 0, 1)}, pointers(t, e, grid.Ix, 1, 1))
}

func TestFill_Boundary(t *testing.T) {
	cfg := testutil.IdentityConfig("AATGC", "AGGC", config.Global, testutil.Gaps(0.1, 0.5, 0.6, 0.3), 1, -1)
	e := newEngine(t, cfg)
	require.NoError(t, e.Fill(context.Background()))
	require.True(t, e.Filled())

	for _, k := range grid.Kinds {
		for r := 0; r < e.grid.Rows(); r++ {
			assert.Equal(t, 0.0, score(t, e, k, r, 0))
			assert.Nil(t, pointers(t, e, k, r, 0))
		}
		for c := 0; c < e.grid.Cols(); c++ {
			assert.Equal(t, 0.0, score(t, e, k, 0, c))
			assert.Nil(t, pointers(t, e, k, 0, c))
		}
	}
}

func TestFill_Rounding(t *testing.T) {
	cfg := testutil.IdentityConfig("a", "a", config.Global, testutil.Gaps(0, 0, 0, 0), 0.12345, 0)
	e := newEngine(t, cfg)
	require.NoError(t, e.Fill(context.Background()))

	assert.Equal(t, 0.123, score(t, e, grid.M, 1, 1))
}

func TestFill_RoundingBelowHalf(t *testing.T) {
	for _, tt := range []struct {
		match float64
		want  float64
	}{
		{2.0025, 2.002},
		{1.0005, 1.0},
		{2.25, 2.25},
		{0.0625, 0.062},
	} {
		cfg := testutil.IdentityConfig("a", "a", config.Global, testutil.Gaps(1, 1, 1, 1), tt.match, 0)
		e := newEngine(t, cfg)
		require.NoError(t, e.Fill(context.Background()))

		assert.Equal(t, tt.want, score(t, e, grid.M, 1, 1), "match %v", tt.match)
	}
}

// Iy(1,2) ties M(1,1)-OpenA against Iy(1,1)-ExtendA only when M(1,1) holds
// 2.0025 rounded to 2.002; rounded up to 2.003 the M candidate wins alone.
func TestFillCell_TieAfterRounding(t *testing.T) {
	table := subst.New()
	table.Set('a', 'c', 2.0025)
	table.Set('a', 'd', 0)
	cfg := &config.Config{
		SeqA:      "a",
		SeqB:      "cd",
		Mode:      config.Global,
		Gaps:      testutil.Gaps(3.002, 0.5, 1, 1),
		AlphabetA: subst.MustAlphabet("a"),
		AlphabetB: subst.MustAlphabet("cd"),
		DeclaredA: -1,
		DeclaredB: -1,
		Table:     table,
	}
	e := newEngine(t, cfg)
	require.NoError(t, e.Fill(context.Background()))

	assert.Equal(t, 2.002, score(t, e, grid.M, 1, 1))
	assert.Equal(t, -0.5, score(t, e, grid.Iy, 1, 1))
	assert.Equal(t, -1.0, score(t, e, grid.Iy, 1, 2))
	assert.Equal(t, []grid.Pointer{p(grid.M, 1, 1), p(grid.Iy, 1, 1)}, pointers(t, e, grid.Iy, 1, 2))
}

func TestFill_MissingPair(t *testing.T) {
	cfg := testutil.IdentityConfig("ab", "ab", config.Global, testutil.Gaps(1, 1, 1, 1), 1, -1)
	cfg.Table = subst.New()
	cfg.Table.Set('a', 'a', 1)
	cfg.Table.Set('a', 'b', -1)
	cfg.Table.Set('b', 'a', -1)

	e := newEngine(t, cfg)
	err := e.Fill(context.Background())
	require.Error(t, err)
	assert.True(t, subst.IsLookupError(err))

	var fe *FillError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Row)
	assert.Equal(t, 2, fe.Col)
	assert.False(t, e.Filled())
}

func TestFill_Cancelled(t *testing.T) {
	cfg := testutil.IdentityConfig("aaaa", "aaa", config.Global, testutil.Gaps(0, 0, 0, 0), 1, -1)
	e := newEngine(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Fill(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, e.Filled())
}

func TestFill_EmptySequence(t *testing.T) {
	cfg := testutil.IdentityConfig("", "abc", config.Global, testutil.Gaps(1, 1, 1, 1), 1, -1)
	e := newEngine(t, cfg)
	require.NoError(t, e.Fill(context.Background()))

	best, starts, err := e.TracebackStarts()
	require.NoError(t, err)
	assert.Equal(t, 0.0, best)
	assert.Len(t, starts, 3*4)
}

func TestTracebackStarts_NotFilled(t *testing.T) {
	cfg := testutil.IdentityConfig("a", "a", config.Global, testutil.Gaps(0, 0, 0, 0), 1, -1)
	e := newEngine(t, cfg)

	_, _, err := e.TracebackStarts()
	assert.ErrorIs(t, err, ErrNotFilled)

	_, err = e.Traceback(context.Background(), p(grid.M, 1, 1))
	assert.ErrorIs(t, err, ErrNotFilled)
}

func TestTracebackStarts_Global(t *testing.T) {
	cfg := testutil.IdentityConfig("aa", "aa", config.Global, testutil.Gaps(0, 0, 0, 0), 1, -1)
	e := newEngine(t, cfg)
	setScore(t, e, grid.M, 1, 1, 5)
	setScore(t, e, grid.Ix, 2, 1, 3)
	e.filled = true

	best, starts, err := e.TracebackStarts()
	require.NoError(t, err)
	assert.Equal(t, 3.0, best)
	assert.Equal(t, []grid.Pointer{p(grid.Ix, 2, 1)}, starts)
}

func TestTracebackStarts_Local(t *testing.T) {
	cfg := testutil.IdentityConfig("aa", "aa", config.Local, testutil.Gaps(0, 0, 0, 0), 1, -1)
	e := newEngine(t, cfg)
	setScore(t, e, grid.M, 1, 1, 5)
	setScore(t, e, grid.Ix, 2, 1, 3)
	e.filled = true

	best, starts, err := e.TracebackStarts()
	require.NoError(t, err)
	assert.Equal(t, 5.0, best)
	assert.Equal(t, []grid.Pointer{p(grid.M, 1, 1)}, starts)
}

func TestTracebackStarts_OrderAndCorner(t *testing.T) {
	cfg := testutil.IdentityConfig("aa", "aa", config.Global, testutil.Gaps(0, 0, 0, 0), 1, -1)
	e := newEngine(t, cfg)
	setScore(t, e, grid.Iy, 2, 0, 4)
	setScore(t, e, grid.M, 2, 2, 4)
	setScore(t, e, grid.M, 1, 2, 4)
	setScore(t, e, grid.Ix, 0, 2, 4.0000005)
	e.filled = true

	best, starts, err := e.TracebackStarts()
	require.NoError(t, err)
	assert.Equal(t, 4.0, best)
	assert.Equal(t, []grid.Pointer{
		p(grid.M, 1, 2),
		p(grid.M, 2, 2),
		p(grid.Ix, 0, 2),
		p(grid.Iy, 2, 0),
	}, starts)
}
