package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terryli710/gotoh/internal/analysis"
	"github.com/terryli710/gotoh/internal/engine"
	"github.com/terryli710/gotoh/internal/render"
)

// CompareResult is the JSON payload of the compare command.
type CompareResult struct {
	Equal      bool               `json:"equal"`
	LeftScore  float64            `json:"left_score"`
	RightScore float64            `json:"right_score"`
	OnlyLeft   []render.Alignment `json:"only_left"`
	OnlyRight  []render.Alignment `json:"only_right"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <report> <report>",
		Short: "Compare two alignment reports",
		Long: `Compare two reports as sets: the scores must be equal and both must
contain the same alignments, in any order.

Exit codes:
  0 - Reports are equivalent
  1 - Reports differ
  2 - Command error (missing file, malformed report, etc.)`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runCompare(opts *RootOptions, leftPath, rightPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	left, err := LoadReport(leftPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load left report", err)
	}
	right, err := LoadReport(rightPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load right report", err)
	}

	diff := analysis.Compare(left.Alignments, right.Alignments)
	result := CompareResult{
		LeftScore:  left.Score,
		RightScore: right.Score,
		OnlyLeft:   diff.OnlyLeft,
		OnlyRight:  diff.OnlyRight,
	}
	if result.OnlyLeft == nil {
		result.OnlyLeft = []render.Alignment{}
	}
	if result.OnlyRight == nil {
		result.OnlyRight = []render.Alignment{}
	}
	result.Equal = diff.Equal() && engine.FuzzyEqual(left.Score, right.Score)

	if formatter.IsJSON() {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		writeCompareText(formatter, result)
	}

	if !result.Equal {
		return NewExitError(ExitFailure, "reports differ")
	}
	return nil
}

func writeCompareText(formatter *OutputFormatter, result CompareResult) {
	w := formatter.Writer
	if result.Equal {
		fmt.Fprintln(w, "✓ Reports match")
		return
	}

	fmt.Fprintln(w, "✗ Reports differ")
	if !engine.FuzzyEqual(result.LeftScore, result.RightScore) {
		fmt.Fprintf(w, "  score: %s vs %s\n",
			render.FormatScore(result.LeftScore), render.FormatScore(result.RightScore))
	}
	for _, al := range result.OnlyLeft {
		fmt.Fprintf(w, "  - %s / %s\n", al.A, al.B)
	}
	for _, al := range result.OnlyRight {
		fmt.Fprintf(w, "  + %s / %s\n", al.A, al.B)
	}
}
