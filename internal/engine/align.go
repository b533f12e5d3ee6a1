package engine

import (
	"context"
	"fmt"

	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/grid"
	"github.com/terryli710/gotoh/internal/render"
)

// Result is the outcome of one alignment run.
type Result struct {
	// Score is the best terminal score, rounded to grid.Precision places.
	Score float64

	// Starts are the traceback start cells tied at Score.
	Starts []grid.Pointer

	// Paths holds every enumerated path, grouped by start in Starts order.
	Paths []Path

	// Alignments holds the rendered paths, without empty or repeated
	// alignments, in path order.
	Alignments []render.Alignment
}

// Align fills the grid, selects the traceback starts, enumerates every path
// and renders each one. The path limit set with WithMaxPaths applies across
// all starts.
func (e *Engine) Align(ctx context.Context) (*Result, error) {
	if err := e.Fill(ctx); err != nil {
		return nil, err
	}

	score, starts, err := e.TracebackStarts()
	if err != nil {
		return nil, err
	}

	// A zero Local score means no residues align; every cell ties and no
	// path carries a symbol.
	if e.cfg.Mode == config.Local && FuzzyEqual(score, 0) {
		starts = nil
	}

	quota := newPathQuota(e.maxPaths)
	var paths []Path
	for _, s := range starts {
		ps, err := e.traceback(ctx, s, quota)
		if err != nil {
			return nil, err
		}
		paths = append(paths, ps...)
	}

	r := render.NewRenderer(e.a, e.b)
	rendered := make([]render.Alignment, 0, len(paths))
	for _, p := range paths {
		al, err := r.Render(p)
		if err != nil {
			return nil, fmt.Errorf("engine: render %s: %w", p, err)
		}
		rendered = append(rendered, al)
	}
	alignments := render.Unique(rendered)

	e.logger.Debug("alignment complete",
		"score", score,
		"starts", len(starts),
		"paths", quota.Current(),
		"alignments", len(alignments),
	)

	return &Result{
		Score:      score,
		Starts:     starts,
		Paths:      paths,
		Alignments: alignments,
	}, nil
}
