package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/terryli710/gotoh/internal/analysis"
	"github.com/terryli710/gotoh/internal/config"
	"github.com/terryli710/gotoh/internal/engine"
	"github.com/terryli710/gotoh/internal/render"
	"github.com/terryli710/gotoh/internal/store"
	"github.com/terryli710/gotoh/internal/subst"
)

// AlignOptions holds flags for the align command.
type AlignOptions struct {
	*RootOptions
	Database   string
	Paths      bool
	Stats      bool
	MaxPaths   int
	Timeout    time.Duration
	CPUProfile bool
	MemProfile bool
	ProfileDir string

	// IDGenerator allows overriding the run id generator (for testing).
	// If nil, the store defaults to UUIDv7.
	IDGenerator store.IDGenerator
}

// AlignOutput is the JSON payload of the align command.
type AlignOutput struct {
	Score      float64            `json:"score"`
	Alignments []render.Alignment `json:"alignments"`
	Paths      []string           `json:"paths,omitempty"`
	Stats      []analysis.Stats   `json:"stats,omitempty"`
	RunID      string             `json:"run_id,omitempty"`
}

// NewAlignCommand creates the align command.
func NewAlignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AlignOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "align <config> [output]",
		Short: "Align two sequences and report every optimal alignment",
		Long: `Align the two sequences of a configuration file and print the report:
the best score, a blank line, then each co-optimal alignment as two lines.

The configuration may be the legacy text format, YAML (.yaml/.yml) or CUE
(.cue). When output is given the report is written there instead of stdout.

Example:
  gotoh align alignment.input
  gotoh align alignment.yaml result.txt --db ./gotoh.db
  gotoh align big.input --max-paths 10000 --timeout 30s --cpuprofile`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return runAlign(opts, args[0], output, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().BoolVar(&opts.Paths, "paths", false, "print traceback paths")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "print per-alignment statistics")
	cmd.Flags().IntVar(&opts.MaxPaths, "max-paths", 0, "fail when traceback yields more paths (0 = unlimited)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "abort the alignment after this long (0 = no limit)")
	cmd.Flags().BoolVar(&opts.CPUProfile, "cpuprofile", false, "write a CPU profile (go tool pprof -http=:8080 cpu.pprof)")
	cmd.Flags().BoolVar(&opts.MemProfile, "memprofile", false, "write a memory profile (go tool pprof -http=:8080 mem.pprof)")
	cmd.Flags().StringVar(&opts.ProfileDir, "profile-dir", ".", "directory for profile output")

	return cmd
}

func runAlign(opts *AlignOptions, configPath, output string, cmd *cobra.Command) error {
	logger := setupLogging(opts.RootOptions)
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.MaxPaths < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "--max-paths must be non-negative", nil)
	}
	if opts.CPUProfile && opts.MemProfile {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "--cpuprofile and --memprofile are mutually exclusive", nil)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load config", err)
	}
	for _, issue := range cfg.Check() {
		logger.Warn("config issue", "field", issue.Field, "message", issue.Message)
	}
	logger.Info("aligning",
		"config", configPath,
		"mode", cfg.Mode,
		"cells", humanize.Comma(int64(len(cfg.RunesA())+1)*int64(len(cfg.RunesB())+1)),
	)

	// go tool pprof -http=:8080 cpu.pprof
	if opts.CPUProfile || opts.MemProfile {
		mode := profile.CPUProfile
		if opts.MemProfile {
			mode = profile.MemProfile
		}
		popts := []func(*profile.Profile){mode, profile.ProfilePath(opts.ProfileDir), profile.NoShutdownHook}
		if !opts.Verbose {
			popts = append(popts, profile.Quiet)
		}
		defer profile.Start(popts...).Stop()
	}

	ctx, cancel := alignContext(cmd, opts.Timeout)
	defer cancel()

	eng, err := engine.New(cfg, engine.WithLogger(logger), engine.WithMaxPaths(opts.MaxPaths))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to create engine", err)
	}

	start := time.Now()
	res, err := eng.Align(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, alignErrorCode(err), "alignment failed", err)
	}
	logger.Info("alignment complete",
		"score", res.Score,
		"alignments", len(res.Alignments),
		"paths", humanize.Comma(int64(len(res.Paths))),
		"elapsed", time.Since(start),
	)

	out := AlignOutput{
		Score:      res.Score,
		Alignments: res.Alignments,
	}
	if out.Alignments == nil {
		out.Alignments = []render.Alignment{}
	}
	if opts.Paths {
		for _, p := range res.Paths {
			out.Paths = append(out.Paths, p.String())
		}
	}
	if opts.Stats {
		for _, al := range res.Alignments {
			out.Stats = append(out.Stats, analysis.Summarize(al))
		}
	}

	if opts.Database != "" {
		id, err := recordRun(ctx, opts, cfg, res)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to record run", err)
		}
		out.RunID = id
		logger.Info("run recorded", "db", opts.Database, "run_id", id)
	}

	if output != "" {
		if err := writeReportFile(output, res); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write report", err)
		}
		formatter.VerboseLog("Wrote report to %s", output)
	}

	if formatter.IsJSON() {
		return formatter.Success(out)
	}

	var buf bytes.Buffer
	if output == "" {
		if err := render.WriteReport(&buf, res.Score, res.Alignments); err != nil {
			return err
		}
	}
	writeAlignExtras(&buf, out)
	if buf.Len() == 0 {
		return nil
	}
	return formatter.Success(buf.String())
}

// alignContext returns the context for one alignment: the command's
// context, cancelled on SIGINT/SIGTERM and after timeout when positive.
func alignContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	stopTimer := func() {}
	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
		stopTimer = cancelTimeout
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, aborting alignment", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan) // Prevent signal handler leak
		stopTimer()
		cancel()
	}
}

// alignErrorCode maps an alignment failure to its CLI error code.
func alignErrorCode(err error) string {
	switch {
	case engine.IsPathLimitError(err):
		return ErrCodePathLimit
	case subst.IsLookupError(err):
		return ErrCodeMissingPair
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	default:
		return ErrCodeGeneric
	}
}

// recordRun writes the run to the history database, creating it if needed.
func recordRun(ctx context.Context, opts *AlignOptions, cfg *config.Config, res *engine.Result) (string, error) {
	var storeOpts []store.Option
	if opts.IDGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDGenerator))
	}
	st, err := store.Open(opts.Database, storeOpts...)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	hash, err := cfg.Fingerprint()
	if err != nil {
		return "", err
	}

	run := &store.Run{
		ConfigHash: hash,
		Mode:       cfg.Mode.String(),
		SeqA:       cfg.SeqA,
		SeqB:       cfg.SeqB,
		Score:      res.Score,
		Alignments: res.Alignments,
	}
	if err := st.WriteRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

func writeReportFile(path string, res *engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WriteReport(f, res.Score, res.Alignments); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeAlignExtras appends the optional text sections for traceback paths
// and per-alignment statistics.
func writeAlignExtras(buf *bytes.Buffer, out AlignOutput) {
	section := func(title string) {
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(title + ":\n")
	}

	if len(out.Paths) > 0 {
		section("Paths")
		for _, p := range out.Paths {
			fmt.Fprintf(buf, "  %s\n", p)
		}
	}

	if len(out.Stats) > 0 {
		section("Stats")
		for i, s := range out.Stats {
			fmt.Fprintf(buf, "  [%d] length: %d, identities: %d (%.2f%%), mismatches: %d, gaps: %d, gap regions: %d\n",
				i+1, s.Length, s.Identities, s.Identity(), s.Mismatches, s.Gaps, s.GapRegions)
		}
	}
}
