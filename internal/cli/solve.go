package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skylinelabs/skyline/pkg/errors"
	"github.com/skylinelabs/skyline/pkg/puzzle"
	"github.com/skylinelabs/skyline/pkg/puzzlefile"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	heuristic string        // cell selection policy: "mrv" or "simple"
	timeout   time.Duration // abort the search after this duration (0 = unlimited)
	output    string        // optional path for the solved board as TOML
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve <puzzle.toml>",
		Short: "Solve a puzzle file",
		Long: `Solve reads a puzzle definition from a TOML file, runs the
backtracking search and prints the solved board with search statistics.
The exit status is non-zero when no solution exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.heuristic, "heuristic", "mrv", "cell selection heuristic: mrv (default), simple")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort the search after this duration (0 = no limit)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the solved board to a puzzle file")

	return cmd
}

// runSolve loads the puzzle, runs the configured search and reports the result.
func (c *CLI) runSolve(ctx context.Context, path string, opts *solveOpts) error {
	h, ok := puzzle.ParseHeuristic(opts.heuristic)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown heuristic %q", opts.heuristic)
	}

	def, err := puzzlefile.ReadDefinitionFile(path)
	if err != nil {
		return err
	}
	p, err := def.Puzzle()
	if err != nil {
		return err
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	c.Logger.Debug("starting search", "file", path, "heuristic", h.String())
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Searching...")
	spinner.Start()

	solver := puzzle.NewSolver(p)
	solver.Heuristic = h
	solved, err := solver.Run(ctx)
	spinner.Stop()

	stats := solver.Stats()
	if err != nil {
		if ctx.Err() != nil {
			printWarning("Search aborted after %s", stats.Elapsed.Round(time.Millisecond))
			printDetail("%s", stats.Report())
			return errors.Wrap(errors.ErrCodeInternal, err, "solve %s", path)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "solve %s", path)
	}
	if !solved {
		printWarning("No solution exists")
		printDetail("%s", stats.Report())
		return errors.New(errors.ErrCodeNoSolution, "no solution for %s", path)
	}

	printNewline()
	fmt.Print(renderBoard(p, 0, 0, false))
	printNewline()
	printSuccess("Solved %s", displayName(def, path))
	printDetail("%s", stats.Report())

	if opts.output != "" {
		if err := puzzlefile.WritePuzzleFile(p, def.Name, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}

	prog.done("Search finished")
	return nil
}

// displayName prefers the name declared inside the file over its path.
func displayName(d *puzzlefile.Definition, path string) string {
	if d.Name != "" {
		return d.Name
	}
	return path
}
