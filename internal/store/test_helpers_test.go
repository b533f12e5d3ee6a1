package store

import (
	"path/filepath"
	"testing"

	"github.com/terryli710/gotoh/internal/render"
	"github.com/terryli710/gotoh/internal/testutil"
)

// createTestStore creates a new store in a temp dir with fixed run ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewFixedIDGenerator()))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(configHash string, score float64, als ...render.Alignment) *Run {
	return &Run{
		ConfigHash: configHash,
		Mode:       "global",
		SeqA:       "AATGC",
		SeqB:       "AGGC",
		Score:      score,
		Alignments: als,
	}
}
