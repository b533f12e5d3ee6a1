// Package analysis inspects alignments independently of the engine that
// produced them: rescoring from the aligned strings, per-alignment
// statistics, locating alignments in their source sequences, and reading
// and comparing alignment reports.
package analysis
