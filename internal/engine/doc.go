// Package engine implements Gotoh affine-gap pairwise alignment.
//
// An Engine owns one config.Config and one 3-tape score grid of size
// (|A|+1)×(|B|+1). Alignment runs in three phases:
//
//  1. Fill: row 0 and column 0 of every tape are 0 with no backpointers;
//     interior cells are filled row-major from the M, Ix and Iy recurrences.
//     Every candidate within Epsilon of a cell's maximum is recorded as a
//     backpointer. In Local mode a negative maximum is floored to 0 with no
//     backpointers.
//  2. Traceback starts: in Global mode the last row and last column of all
//     three tapes, in Local mode every cell; the maximum and all cells tied
//     with it.
//  3. Path enumeration: every backpointer chain from a start cell down to a
//     boundary cell (or, in Local mode, down to but not including the first
//     zero-score cell).
//
// DETERMINISM:
// Fill order, start order (tape M, Ix, Iy, then row-major) and pointer order
// (candidate order M, Ix, Iy) are fixed, so repeated runs return identical
// scores, paths and alignments.
//
// COST:
// Fill is O(|A|·|B|). Enumeration is exponential in the number of ties in
// the worst case; WithMaxPaths bounds it.
//
// The engine is single-threaded and starts no goroutines. An Engine is not
// safe for concurrent use.
package engine
