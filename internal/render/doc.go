// Package render turns traceback paths into gap-padded alignment strings
// and writes the plain-text alignment report.
//
// A path runs from its start cell down to its terminal cell. Rendering walks
// it deepest-first: an M cell consumes one symbol from each sequence, an Ix
// cell consumes a symbol from A against a gap in B, and an Iy cell a gap in A
// against a symbol from B. Boundary cells (row 0 or column 0) emit nothing.
package render
