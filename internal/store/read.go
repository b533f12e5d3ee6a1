package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/terryli710/gotoh/internal/render"
)

const runColumns = `id, seq, config_hash, mode, seq_a, seq_b, score, alignment_count`

// ReadRun returns the run with the given id, including its alignments in
// output order. Returns ErrNotFound if no such run exists.
func (s *Store) ReadRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT aligned_a, aligned_b
		FROM alignments
		WHERE run_id = ?
		ORDER BY ordinal ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query alignments: %w", err)
	}
	defer rows.Close()

	run.Alignments = []render.Alignment{}
	for rows.Next() {
		var al render.Alignment
		if err := rows.Scan(&al.A, &al.B); err != nil {
			return nil, fmt.Errorf("scan alignment: %w", err)
		}
		run.Alignments = append(run.Alignments, al)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alignments: %w", err)
	}

	return &run, nil
}

// ListRuns returns up to limit runs, most recent (highest seq) first.
// A limit of 0 or less returns every run.
//
// Returns an empty slice (not nil) if the store holds no runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.queryRuns(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
}

// FindRunsByConfig returns every run recorded for a configuration
// fingerprint, oldest first.
//
// Returns an empty slice (not nil) if no run matches.
func (s *Store) FindRunsByConfig(ctx context.Context, configHash string) ([]Run, error) {
	return s.queryRuns(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE config_hash = ?
		ORDER BY seq ASC
	`, configHash)
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	err := sc.Scan(&r.ID, &r.Seq, &r.ConfigHash, &r.Mode, &r.SeqA, &r.SeqB, &r.Score, &r.AlignmentCount)
	return r, err
}
