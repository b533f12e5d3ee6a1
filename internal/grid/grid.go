package grid

import "strconv"

// Precision is the number of decimal places kept by SetScore.
const Precision = 3

// Cell is one tape entry: a score and the set of predecessor pointers that
// produced it.
type Cell struct {
	Score    float64
	Pointers []Pointer
}

type record [numKinds]Cell

// Grid is a (rows × cols) grid of M/Ix/Iy records.
// A new grid has every score at 0 and every pointer set empty.
type Grid struct {
	rows  int
	cols  int
	cells []record
}

// New allocates a grid with the given dimensions.
// Returns ErrInvalidDimensions if rows or cols is less than 1.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrInvalidDimensions
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]record, rows*cols),
	}, nil
}

// Rows returns the number of rows (len(A)+1 for an alignment grid).
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns (len(B)+1 for an alignment grid).
func (g *Grid) Cols() int { return g.cols }

// Score returns the score stored at (row, col) on tape kind.
func (g *Grid) Score(row, col int, kind Kind) (float64, error) {
	c, err := g.cell(row, col, kind)
	if err != nil {
		return 0, err
	}
	return c.Score, nil
}

// SetScore stores v rounded to Precision decimal places.
func (g *Grid) SetScore(row, col int, kind Kind, v float64) error {
	c, err := g.cell(row, col, kind)
	if err != nil {
		return err
	}
	c.Score = Round(v, Precision)
	return nil
}

// Pointers returns a copy of the pointer set at (row, col) on tape kind.
func (g *Grid) Pointers(row, col int, kind Kind) ([]Pointer, error) {
	c, err := g.cell(row, col, kind)
	if err != nil {
		return nil, err
	}
	if len(c.Pointers) == 0 {
		return nil, nil
	}
	out := make([]Pointer, len(c.Pointers))
	copy(out, c.Pointers)
	return out, nil
}

// AddPointers adds ps to the pointer set at (row, col) on tape kind.
// Additive: existing pointers are kept and duplicates are ignored.
func (g *Grid) AddPointers(row, col int, kind Kind, ps ...Pointer) error {
	c, err := g.cell(row, col, kind)
	if err != nil {
		return err
	}
	for _, p := range ps {
		if !containsPointer(c.Pointers, p) {
			c.Pointers = append(c.Pointers, p)
		}
	}
	return nil
}

// Contains reports whether (row, col) lies inside the grid.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) cell(row, col int, kind Kind) (*Cell, error) {
	if !g.Contains(row, col) || int(kind) >= numKinds {
		return nil, &BoundsError{Row: row, Col: col, Kind: kind, Rows: g.rows, Cols: g.cols}
	}
	return &g.cells[row*g.cols+col][kind], nil
}

func containsPointer(ps []Pointer, p Pointer) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

// Round rounds v to the given number of decimal places. The exact binary
// value of v is rounded, with exact halves going to the even digit, so
// 2.0025 (stored just below the half) rounds to 2.002 and 2.25 to one
// place rounds to 2.2. Negative zero is returned as zero.
func Round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		return 0
	}
	return r
}
