package store

import (
	"context"
	"fmt"
)

// WriteRun records run and its alignments in one transaction.
//
// run.ID is generated when empty. run.Seq is always assigned by the store
// as one more than the highest seq recorded so far; run.AlignmentCount is
// set from run.Alignments. The assigned values are written back to run.
func (s *Store) WriteRun(ctx context.Context, run *Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return fmt.Errorf("write run: next seq: %w", err)
	}

	id := run.ID
	if id == "" {
		id = s.ids.Generate()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, config_hash, mode, seq_a, seq_b, score, alignment_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		seq,
		run.ConfigHash,
		run.Mode,
		run.SeqA,
		run.SeqB,
		run.Score,
		len(run.Alignments),
	)
	if err != nil {
		return fmt.Errorf("write run %s: %w", id, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO alignments (run_id, ordinal, aligned_a, aligned_b)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write run %s: prepare alignments: %w", id, err)
	}
	defer stmt.Close()

	for i, al := range run.Alignments {
		if _, err := stmt.ExecContext(ctx, id, i, al.A, al.B); err != nil {
			return fmt.Errorf("write run %s: alignment %d: %w", id, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run %s: commit: %w", id, err)
	}

	run.ID = id
	run.Seq = seq
	run.AlignmentCount = len(run.Alignments)
	return nil
}
