package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/grid"
)

// Engine aligns the two sequences of one configuration.
type Engine struct {
	cfg    *config.Config
	a      []rune
	b      []rune
	grid   *grid.Grid
	logger *slog.Logger

	// maxPaths bounds path enumeration per Align or Traceback call;
	// 0 means unlimited.
	maxPaths int

	filled bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for fill and traceback summaries.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxPaths bounds the number of paths enumerated before a
// TracebackError with ErrCodePathLimit is returned.
//
// Default: 0 (unlimited).
func WithMaxPaths(n int) Option {
	return func(e *Engine) {
		e.maxPaths = n
	}
}

// New creates an Engine for cfg and allocates its grid.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("engine: nil config")
	}
	if cfg.Table == nil {
		return nil, fmt.Errorf("engine: config has no substitution table")
	}

	a, b := cfg.RunesA(), cfg.RunesB()
	g, err := grid.New(len(a)+1, len(b)+1)
	if err != nil {
		return nil, fmt.Errorf("engine: allocate grid: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		a:      a,
		b:      b,
		grid:   g,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the configuration the engine aligns.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Grid returns the score grid. It is complete once Fill has returned nil.
func (e *Engine) Grid() *grid.Grid {
	return e.grid
}

// Filled reports whether Fill has completed.
func (e *Engine) Filled() bool {
	return e.filled
}

// Fill computes every cell of the three tapes. Row 0 and column 0 keep their
// zero scores and empty pointer sets; interior cells are filled row-major.
//
// A missing substitution pair aborts the fill with a *FillError wrapping the
// *subst.LookupError. ctx is checked between rows; cancellation returns
// ctx.Err(). Calling Fill again after it succeeded is a no-op.
func (e *Engine) Fill(ctx context.Context) error {
	if e.filled {
		return nil
	}

	rows, cols := e.grid.Rows(), e.grid.Cols()
	e.logger.Debug("fill starting",
		"mode", e.cfg.Mode,
		"rows", humanize.Comma(int64(rows)),
		"cols", humanize.Comma(int64(cols)),
		"cells", humanize.Comma(int64(rows)*int64(cols)*int64(len(grid.Kinds))),
	)

	for i := 1; i < rows; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j := 1; j < cols; j++ {
			if err := e.fillCell(i, j); err != nil {
				return err
			}
		}
	}

	e.filled = true
	e.logger.Debug("fill complete", "mode", e.cfg.Mode)
	return nil
}

// fillCell fills (i, j) of all three tapes. Every predecessor it reads lies
// in an earlier row or an earlier column of the same row.
func (e *Engine) fillCell(i, j int) error {
	s, err := e.cfg.Table.Get(e.a[i-1], e.b[j-1])
	if err != nil {
		return &FillError{Row: i, Col: j, Err: err}
	}
	gaps := e.cfg.Gaps

	diag := make([]candidate, 0, len(grid.Kinds))
	for _, k := range grid.Kinds {
		diag = append(diag, e.through(i-1, j-1, k, s))
	}
	if err := e.set(i, j, grid.M, diag); err != nil {
		return err
	}

	up := []candidate{
		e.through(i-1, j, grid.M, -gaps.OpenB),
		e.through(i-1, j, grid.Ix, -gaps.ExtendB),
	}
	if err := e.set(i, j, grid.Ix, up); err != nil {
		return err
	}

	left := []candidate{
		e.through(i, j-1, grid.M, -gaps.OpenA),
		e.through(i, j-1, grid.Iy, -gaps.ExtendA),
	}
	return e.set(i, j, grid.Iy, left)
}

// through reads the score at (row, col, kind) and adds delta. The
// position is always inside the grid, so the lookup cannot fail.
func (e *Engine) through(row, col int, kind grid.Kind, delta float64) candidate {
	v, _ := e.grid.Score(row, col, kind)
	return candidate{from: grid.Pointer{Row: row, Col: col, Kind: kind}, score: v + delta}
}

// set writes the best of cands to (i, j, kind), applying the Local floor.
func (e *Engine) set(i, j int, kind grid.Kind, cands []candidate) error {
	score, ptrs := best(cands)
	if e.cfg.Mode == config.Local && score < 0 {
		return e.grid.SetScore(i, j, kind, 0)
	}
	if err := e.grid.SetScore(i, j, kind, score); err != nil {
		return err
	}
	return e.grid.AddPointers(i, j, kind, ptrs...)
}
