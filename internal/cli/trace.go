package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skylinelabs/skyline/pkg/errors"
	"github.com/skylinelabs/skyline/pkg/puzzle"
	"github.com/skylinelabs/skyline/pkg/puzzlefile"
	"github.com/skylinelabs/skyline/pkg/trace"
)

// traceOpts holds the command-line flags for the trace command.
type traceOpts struct {
	heuristic string // cell selection policy: "mrv" or "simple"
	output    string // output file; extension picks the format unless --format is set
	format    string // "svg", "png" or "dot"
	maxNodes  int    // recording cap, keeps huge searches renderable
}

// traceCommand creates the trace command for rendering the search tree.
func (c *CLI) traceCommand() *cobra.Command {
	opts := traceOpts{
		maxNodes: trace.DefaultMaxNodes,
	}

	cmd := &cobra.Command{
		Use:   "trace <puzzle.toml>",
		Short: "Render the backtracking search tree",
		Long: `Trace solves a puzzle while recording every placement and backtrack,
then renders the search tree with Graphviz. The solution branch is
highlighted; abandoned branches are drawn dashed. Deep searches are
truncated at --max-nodes so the output stays readable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.heuristic, "heuristic", "mrv", "cell selection heuristic: mrv (default), simple")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png, dot")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", opts.maxNodes, "stop recording after this many placements")

	return cmd
}

func (c *CLI) runTrace(ctx context.Context, path string, opts *traceOpts) error {
	format, output, err := traceTarget(path, opts)
	if err != nil {
		return err
	}
	h, ok := puzzle.ParseHeuristic(opts.heuristic)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown heuristic %q", opts.heuristic)
	}

	p, err := puzzlefile.ReadPuzzleFile(path)
	if err != nil {
		return err
	}

	rec := trace.NewRecorder()
	rec.MaxNodes = opts.maxNodes

	solver := puzzle.NewSolver(p)
	solver.Heuristic = h
	solver.Tracer = rec

	c.Logger.Debug("tracing search", "file", path, "heuristic", h.String())
	solved, err := solver.Run(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "trace %s", path)
	}

	dot := trace.ToDOT(rec)
	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = trace.RenderSVG(ctx, dot)
	case "png":
		data, err = trace.RenderPNG(ctx, dot)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
	}

	if solved {
		printSuccess("Traced search: solution found")
	} else {
		printWarning("Traced search: no solution")
	}
	printDetail("%d placements recorded", len(rec.Nodes()))
	if rec.Truncated() {
		printDetail("recording truncated at %d nodes", opts.maxNodes)
	}
	printDetail("%s", solver.Stats().Report())
	printFile(output)
	return nil
}

// traceTarget resolves the output format and path from the flags. An
// explicit --format wins; otherwise the output extension decides, and
// with neither set the default is SVG next to the input file.
func traceTarget(input string, opts *traceOpts) (format, output string, err error) {
	format = opts.format
	if format == "" && opts.output != "" {
		format = strings.TrimPrefix(filepath.Ext(opts.output), ".")
	}
	if format == "" {
		format = "svg"
	}
	switch format {
	case "svg", "png", "dot":
	default:
		return "", "", errors.New(errors.ErrCodeUnsupported, "unknown trace format %q", format)
	}

	output = opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	return format, output, nil
}
