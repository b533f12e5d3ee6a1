// Package config defines the alignment configuration and its loaders.
//
// A Config holds the two sequences, the alignment mode, the four affine gap
// penalties, both alphabets and the substitution table. It is created once
// per alignment run and treated as read-only afterwards.
//
// Three input formats are supported, selected by LoadFile from the file
// extension:
//
//   - legacy text (any extension other than those below), the 8-line format
//     read by Parse;
//   - YAML (.yaml, .yml), decoded strictly and validated against the
//     embedded CUE schema;
//   - CUE (.cue), unified with the same schema.
//
// Sequences, alphabets and table symbols are NFC-normalized on load so that
// precomposed and decomposed spellings of a symbol compare equal.
//
// Malformed input is reported as *FormatError before any alignment work
// starts.
package config
