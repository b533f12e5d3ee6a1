package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terryli710/gotoh/internal/analysis"
	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/engine"
	"github.com/terryli710/gotoh/internal/grid"
	"github.com/terryli710/gotoh/internal/render"
)

// RescoredAlignment is one report alignment with its recomputed score.
type RescoredAlignment struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
	Match bool    `json:"match"`
	Error string  `json:"error,omitempty"`
}

// RescoreResult is the JSON payload of the rescore command.
type RescoreResult struct {
	ReportScore float64             `json:"report_score"`
	Alignments  []RescoredAlignment `json:"alignments"`
	Pass        bool                `json:"pass"`
}

// NewRescoreCommand creates the rescore command.
func NewRescoreCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rescore <config> <report>",
		Short: "Recompute report alignment scores from their strings",
		Long: `Score every alignment of a report directly from its aligned strings,
using the configuration's substitution table and gap penalties, and check
each against the report's best score (compared at one decimal place, the
precision of the report).

Exit codes:
  0 - Every alignment reaches the report score
  1 - At least one alignment does not
  2 - Command error (missing file, malformed report, etc.)`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRescore(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runRescore(opts *RootOptions, configPath, reportPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load config", err)
	}
	rep, err := LoadReport(reportPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load report", err)
	}

	result := RescoreResult{
		ReportScore: rep.Score,
		Alignments:  make([]RescoredAlignment, 0, len(rep.Alignments)),
		Pass:        true,
	}
	for _, al := range rep.Alignments {
		ra := rescoreOne(al, cfg, rep.Score)
		if !ra.Match {
			result.Pass = false
		}
		result.Alignments = append(result.Alignments, ra)
	}

	if formatter.IsJSON() {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		writeRescoreText(formatter, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, "rescored alignments do not match the report score")
	}
	return nil
}

func rescoreOne(al render.Alignment, cfg *config.Config, want float64) RescoredAlignment {
	ra := RescoredAlignment{A: al.A, B: al.B}
	v, err := analysis.Rescore(al, cfg)
	if err != nil {
		ra.Error = err.Error()
		return ra
	}
	ra.Score = grid.Round(v, grid.Precision)
	ra.Match = engine.FuzzyEqual(grid.Round(v, 1), grid.Round(want, 1))
	return ra
}

func writeRescoreText(formatter *OutputFormatter, result RescoreResult) {
	w := formatter.Writer
	fmt.Fprintf(w, "Report score: %s\n\n", render.FormatScore(result.ReportScore))
	for i, ra := range result.Alignments {
		mark := "✓"
		if !ra.Match {
			mark = "✗"
		}
		detail := grid.FormatScore(ra.Score)
		if ra.Error != "" {
			detail = ra.Error
		}
		fmt.Fprintf(w, "%s [%d] %s\n", mark, i+1, detail)
		fmt.Fprintf(w, "    %s\n    %s\n", ra.A, ra.B)
	}
	if len(result.Alignments) == 0 {
		fmt.Fprintln(w, "No alignments in report.")
	}
}
