package store

import (
	"errors"

	"github.com/terryli710/gotoh/internal/render"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("store: run not found")

// Run is one recorded alignment run.
type Run struct {
	ID         string  `json:"id"`
	Seq        int64   `json:"seq"`
	ConfigHash string  `json:"config_hash"`
	Mode       string  `json:"mode"`
	SeqA       string  `json:"seq_a"`
	SeqB       string  `json:"seq_b"`
	Score      float64 `json:"score"`

	// AlignmentCount is the number of alignments written with the run.
	AlignmentCount int `json:"alignment_count"`

	// Alignments is populated by ReadRun only; listings leave it nil.
	Alignments []render.Alignment `json:"alignments,omitempty"`
}
