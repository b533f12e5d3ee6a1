// Package grid stores the three dynamic-programming tapes (M, Ix, Iy) of an
// affine-gap alignment.
//
// The tapes share one index space, so they are kept as a single
// (rows × cols) grid of 3-element records in one contiguous slice rather
// than three separately allocated matrices. Each record holds, per tape, a
// score and a set of backpointers to predecessor cells.
//
// Scores are rounded to 3 decimal places on write so that comparisons made
// later under a 1e-6 tolerance are stable across the grid.
//
// Every accessor checks its (row, col, kind) arguments and returns a
// *BoundsError instead of clamping.
package grid
