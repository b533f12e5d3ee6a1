package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/terryli710/gotoh/internal/render"
	"github.com/terryli710/gotoh/internal/store"
)

// HistoryOptions holds flags for the history and show commands.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Config   string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded alignment runs",
		Long: `List the runs recorded with "gotoh align --db", newest first.

With --config only runs of an identical configuration are listed, oldest
first; configurations are matched by content fingerprint, so the same
alignment problem in legacy, YAML or CUE form matches.

Example:
  gotoh history --db ./gotoh.db --limit 10
  gotoh history --db ./gotoh.db --config alignment.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 = all)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "only list runs of this configuration")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Long: `Print a recorded run's metadata followed by its report.

Example:
  gotoh show --db ./gotoh.db 0192f5e4-...`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := commandContext(cmd)

	st, err := OpenStore(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to open history", err)
	}
	defer st.Close()

	var runs []store.Run
	if opts.Config != "" {
		cfg, err := LoadConfig(opts.Config)
		if err != nil {
			return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load config", err)
		}
		hash, err := cfg.Fingerprint()
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to fingerprint config", err)
		}
		formatter.VerboseLog("Config fingerprint %s", hash)
		runs, err = st.FindRunsByConfig(ctx, hash)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to query runs", err)
		}
	} else {
		runs, err = st.ListRuns(ctx, opts.Limit)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to list runs", err)
		}
	}
	if runs == nil {
		runs = []store.Run{}
	}

	if formatter.IsJSON() {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tMODE\tSCORE\tALIGNMENTS\tSEQ A\tSEQ B")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.Seq, r.ID, r.Mode, render.FormatScore(r.Score), r.AlignmentCount,
			abbreviate(r.SeqA, 24), abbreviate(r.SeqB, 24))
	}
	return tw.Flush()
}

func runShow(opts *HistoryOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := OpenStore(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to open history", err)
	}
	defer st.Close()

	run, err := st.ReadRun(commandContext(cmd), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("run %s not found", id), nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read run", err)
	}

	if formatter.IsJSON() {
		return formatter.Success(run)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run:    %s (seq %d)\n", run.ID, run.Seq)
	fmt.Fprintf(w, "Mode:   %s\n", run.Mode)
	fmt.Fprintf(w, "Config: %s\n", run.ConfigHash)
	fmt.Fprintf(w, "A:      %s\n", run.SeqA)
	fmt.Fprintf(w, "B:      %s\n", run.SeqB)
	fmt.Fprintln(w)
	return render.WriteReport(w, run.Score, run.Alignments)
}

// abbreviate shortens s to at most n symbols, marking the cut with "...".
func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
