package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/terryli710/gotoh/internal/analysis"
	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/engine"
	"github.com/terryli710/gotoh/internal/grid"
	"github.com/terryli710/gotoh/internal/render"
	"github.com/terryli710/gotoh/internal/store"
	"github.com/terryli710/gotoh/internal/testutil"
)

// Harness executes one scenario against a fresh store.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, with
// fixed run ids so results are reproducible.
//
// Execution flow:
//  1. Load the configuration (file or inline input)
//  2. Align with the scenario's path limit
//  3. Render the report and rescore every alignment
//  4. Record the run and read it back
//  5. Evaluate the scenario's assertions
//
// Failed checks and assertions are reported in Result.Errors. An error is
// returned only when the scenario cannot be executed at all.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	cfg, err := loadConfig(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewFixedIDGenerator()))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	return h.run(ctx, scenario, cfg)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario, cfg *config.Config) (*Result, error) {
	eng, err := engine.New(cfg,
		engine.WithLogger(h.logger),
		engine.WithMaxPaths(scenario.MaxPaths),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	res, err := eng.Align(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to align: %w", err)
	}

	result := NewResult()
	result.Score = res.Score
	result.Alignments = append(result.Alignments, res.Alignments...)
	result.PathCount = len(res.Paths)

	var buf bytes.Buffer
	if err := render.WriteReport(&buf, res.Score, res.Alignments); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	result.Report = buf.String()

	for _, msg := range checkRescore(cfg, res) {
		result.AddError(msg)
	}

	if err := h.record(ctx, cfg, result); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"score", result.Score,
		"alignments", len(result.Alignments),
		"pass", result.Pass,
	)

	return result, nil
}

// record writes the run to the store, reads it back and reports any
// difference as a result error.
func (h *Harness) record(ctx context.Context, cfg *config.Config, result *Result) error {
	hash, err := cfg.Fingerprint()
	if err != nil {
		return fmt.Errorf("failed to fingerprint config: %w", err)
	}

	run := &store.Run{
		ConfigHash: hash,
		Mode:       cfg.Mode.String(),
		SeqA:       cfg.SeqA,
		SeqB:       cfg.SeqB,
		Score:      result.Score,
		Alignments: result.Alignments,
	}
	if err := h.store.WriteRun(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	result.RunID = run.ID

	got, err := h.store.ReadRun(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to read run back: %w", err)
	}

	if got.Score != result.Score {
		result.AddError(fmt.Sprintf("recorded score %v, want %v", got.Score, result.Score))
	}
	if d := analysis.Compare(result.Alignments, got.Alignments); !d.Equal() || len(got.Alignments) != len(result.Alignments) {
		result.AddError(fmt.Sprintf("recorded %d alignments, want %d", len(got.Alignments), len(result.Alignments)))
	}
	return nil
}

// checkRescore verifies every alignment scores exactly the best score when
// recomputed from its strings.
func checkRescore(cfg *config.Config, res *engine.Result) []string {
	var errs []string
	for i, al := range res.Alignments {
		got, err := analysis.Rescore(al, cfg)
		if err != nil {
			errs = append(errs, fmt.Sprintf("alignment[%d]: rescore: %v", i, err))
			continue
		}
		if !engine.FuzzyEqual(grid.Round(got, grid.Precision), res.Score) {
			errs = append(errs, fmt.Sprintf("alignment[%d] %s/%s rescores to %v, want %v",
				i, al.A, al.B, grid.Round(got, grid.Precision), res.Score))
		}
	}
	return errs
}

func loadConfig(s *Scenario) (*config.Config, error) {
	if s.Config != "" {
		return config.LoadFile(s.Config)
	}
	return config.Parse(strings.NewReader(s.Input))
}
