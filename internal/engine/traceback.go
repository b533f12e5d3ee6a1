package engine

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/grid"
)

// ErrNotFilled is returned by traceback operations called before Fill.
var ErrNotFilled = errors.New("engine: grid not filled")

// Path is a chain of cells from a traceback start down to its terminal cell.
type Path []grid.Pointer

// String renders the path as "M(5,4)->Iy(4,3)->...".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return strings.Join(parts, "->")
}

// key identifies the path up to, but not including, its last cell.
func (p Path) key() string {
	if len(p) == 0 {
		return ""
	}
	return p[:len(p)-1].String()
}

// TracebackStarts returns the best terminal score and every cell tied with
// it. Global mode considers the last row and last column of all three
// tapes; Local mode considers every cell. Cells are ordered by tape (M, Ix,
// Iy), then row-major, and each appears once.
func (e *Engine) TracebackStarts() (float64, []grid.Pointer, error) {
	if !e.filled {
		return 0, nil, ErrNotFilled
	}

	var cells []grid.Pointer
	for _, k := range grid.Kinds {
		cells = append(cells, e.terminalCells(k)...)
	}

	top := math.Inf(-1)
	for _, c := range cells {
		v, err := e.grid.Score(c.Row, c.Col, c.Kind)
		if err != nil {
			return 0, nil, err
		}
		if v > top {
			top = v
		}
	}

	var starts []grid.Pointer
	for _, c := range cells {
		v, _ := e.grid.Score(c.Row, c.Col, c.Kind)
		if FuzzyEqual(v, top) {
			starts = append(starts, c)
		}
	}
	return top, starts, nil
}

// terminalCells lists the candidate start cells of one tape in row-major
// order.
func (e *Engine) terminalCells(k grid.Kind) []grid.Pointer {
	rows, cols := e.grid.Rows(), e.grid.Cols()
	var cells []grid.Pointer
	if e.cfg.Mode == config.Local {
		cells = make([]grid.Pointer, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				cells = append(cells, grid.Pointer{Row: r, Col: c, Kind: k})
			}
		}
		return cells
	}

	cells = make([]grid.Pointer, 0, rows+cols-1)
	for r := 0; r < rows-1; r++ {
		cells = append(cells, grid.Pointer{Row: r, Col: cols - 1, Kind: k})
	}
	for c := 0; c < cols; c++ {
		cells = append(cells, grid.Pointer{Row: rows - 1, Col: c, Kind: k})
	}
	return cells
}

// node is one arena entry of the traceback tree.
type node struct {
	cell   grid.Pointer
	parent int
}

// Traceback enumerates every path from start. Branches are expanded in
// pointer order, so paths come out in depth-first order. A path ends at a
// cell in row 0 or column 0 (included), or, in Local mode, just before a
// cell whose score is zero (excluded). Paths equal in all but their last
// cell are collapsed, keeping the first; empty paths are dropped.
func (e *Engine) Traceback(ctx context.Context, start grid.Pointer) ([]Path, error) {
	if !e.filled {
		return nil, ErrNotFilled
	}
	return e.traceback(ctx, start, newPathQuota(e.maxPaths))
}

func (e *Engine) traceback(ctx context.Context, start grid.Pointer, quota *pathQuota) ([]Path, error) {
	if _, err := e.grid.Score(start.Row, start.Col, start.Kind); err != nil {
		return nil, err
	}

	arena := []node{{cell: start, parent: -1}}
	work := []int{0}
	var paths []Path
	seen := make(map[string]bool)

	emit := func(last int) error {
		if last < 0 {
			return nil
		}
		p := e.unwind(arena, last)
		k := p.key()
		if seen[k] {
			return nil
		}
		seen[k] = true
		if err := quota.Check(); err != nil {
			return err
		}
		paths = append(paths, p)
		return nil
	}

	for steps := 0; len(work) > 0; steps++ {
		if steps&0xfff == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		idx := work[len(work)-1]
		work = work[:len(work)-1]
		cell := arena[idx].cell

		if cell.OnBoundary() {
			if err := emit(idx); err != nil {
				return nil, err
			}
			continue
		}

		score, err := e.grid.Score(cell.Row, cell.Col, cell.Kind)
		if err != nil {
			return nil, err
		}
		if e.cfg.Mode == config.Local && FuzzyEqual(score, 0) {
			if err := emit(arena[idx].parent); err != nil {
				return nil, err
			}
			continue
		}

		ptrs, err := e.grid.Pointers(cell.Row, cell.Col, cell.Kind)
		if err != nil {
			return nil, err
		}
		if len(ptrs) == 0 {
			if err := emit(idx); err != nil {
				return nil, err
			}
			continue
		}

		// Push in reverse so the first pointer is expanded first.
		for i := len(ptrs) - 1; i >= 0; i-- {
			arena = append(arena, node{cell: ptrs[i], parent: idx})
			work = append(work, len(arena)-1)
		}
	}

	e.logger.Debug("traceback complete",
		"start", start.String(),
		"paths", len(paths),
		"nodes", humanize.Comma(int64(len(arena))),
	)
	return paths, nil
}

// unwind returns the path from the arena root down to last.
func (e *Engine) unwind(arena []node, last int) Path {
	depth := 0
	for i := last; i >= 0; i = arena[i].parent {
		depth++
	}
	p := make(Path, depth)
	for i := last; i >= 0; i = arena[i].parent {
		depth--
		p[depth] = arena[i].cell
	}
	return p
}
