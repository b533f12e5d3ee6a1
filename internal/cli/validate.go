package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terryli710/gotoh/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool           `json:"valid"`
	Mode        string         `json:"mode"`
	LengthA     int            `json:"length_a"`
	LengthB     int            `json:"length_b"`
	Fingerprint string         `json:"fingerprint"`
	Issues      []config.Issue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a configuration without aligning",
		Long: `Load a configuration and check it for problems that would surprise at
alignment time: sequence symbols outside their alphabet, declared alphabet
sizes that disagree with the alphabet given, substitution pairs the
sequences need but the table lacks, and negative gap penalties.

Exit codes:
  0 - Configuration is clean
  1 - Configuration loads but has issues
  2 - Configuration cannot be loaded`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, configPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load config", err)
	}

	fingerprint, err := cfg.Fingerprint()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to fingerprint config", err)
	}

	result := ValidationResult{
		Valid:       true,
		Mode:        cfg.Mode.String(),
		LengthA:     len(cfg.RunesA()),
		LengthB:     len(cfg.RunesB()),
		Fingerprint: fingerprint,
		Issues:      cfg.Check(),
	}
	formatter.VerboseLog("Loaded %s: %s, %d x %d symbols", configPath, result.Mode, result.LengthA, result.LengthB)

	if len(result.Issues) == 0 {
		return outputValidateSuccess(formatter, result)
	}
	result.Valid = false
	return outputValidationIssues(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Config valid (%s, %d x %d)\n", result.Mode, result.LengthA, result.LengthB)
	return nil
}

// outputValidationIssues outputs every issue found by config.Check.
func outputValidationIssues(formatter *OutputFormatter, result ValidationResult) error {
	msg := fmt.Sprintf("validation failed with %d issue(s)", len(result.Issues))

	if formatter.IsJSON() {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeGeneric,
				Message: msg,
			},
		}
		if err := formatter.encode(response); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, msg)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range result.Issues {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", issue.Field, issue.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, msg)
}
