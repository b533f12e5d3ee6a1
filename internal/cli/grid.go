package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/terryli710/gotoh/internal/engine"
	"github.com/terryli710/gotoh/internal/grid"
)

// GridOptions holds flags for the grid command.
type GridOptions struct {
	*RootOptions
	Kind     string
	Pointers bool
}

// GridOutput is the JSON payload of the grid command.
type GridOutput struct {
	Kind     string       `json:"kind"`
	Rows     int          `json:"rows"`
	Cols     int          `json:"cols"`
	Scores   [][]float64  `json:"scores"`
	Pointers [][][]string `json:"pointers,omitempty"`
}

// NewGridCommand creates the grid command.
func NewGridCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GridOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "grid <config>",
		Short: "Dump one filled recurrence tape",
		Long: `Fill the score grid for a configuration and print one tape (M, Ix or
Iy) as a table, one grid row per line. With --pointers the predecessor sets
are printed instead of the scores.

Example:
  gotoh grid alignment.input --kind Ix
  gotoh grid alignment.input --kind M --pointers`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrid(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "M", "tape to print (M|Ix|Iy)")
	cmd.Flags().BoolVar(&opts.Pointers, "pointers", false, "print pointer sets instead of scores")

	return cmd
}

func runGrid(opts *GridOptions, configPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	kind, err := grid.ParseKind(opts.Kind)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "invalid --kind", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load config", err)
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to create engine", err)
	}
	if err := eng.Fill(commandContext(cmd)); err != nil {
		return formatter.Fail(ExitCommandError, alignErrorCode(err), "fill failed", err)
	}
	g := eng.Grid()

	if formatter.IsJSON() {
		out, err := gridOutput(g, kind, opts.Pointers)
		if err != nil {
			return err
		}
		return formatter.Success(out)
	}

	var buf bytes.Buffer
	if opts.Pointers {
		err = g.WritePointers(&buf, kind)
	} else {
		err = g.WriteScores(&buf, kind)
	}
	if err != nil {
		return err
	}
	return formatter.Success(buf.String())
}

func gridOutput(g *grid.Grid, kind grid.Kind, pointers bool) (*GridOutput, error) {
	out := &GridOutput{
		Kind:   kind.String(),
		Rows:   g.Rows(),
		Cols:   g.Cols(),
		Scores: make([][]float64, g.Rows()),
	}
	if pointers {
		out.Pointers = make([][][]string, g.Rows())
	}

	for r := 0; r < g.Rows(); r++ {
		out.Scores[r] = make([]float64, g.Cols())
		if pointers {
			out.Pointers[r] = make([][]string, g.Cols())
		}
		for c := 0; c < g.Cols(); c++ {
			v, err := g.Score(r, c, kind)
			if err != nil {
				return nil, err
			}
			out.Scores[r][c] = v
			if !pointers {
				continue
			}
			ps, err := g.Pointers(r, c, kind)
			if err != nil {
				return nil, err
			}
			names := make([]string, len(ps))
			for i, p := range ps {
				names[i] = p.String()
			}
			out.Pointers[r][c] = names
		}
	}
	return out, nil
}
