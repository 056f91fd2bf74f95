package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/skylinelabs/skyline/pkg/errors"
	"github.com/skylinelabs/skyline/pkg/puzzle"
	"github.com/skylinelabs/skyline/pkg/puzzlefile"
)

// benchOpts holds the command-line flags for the bench command.
type benchOpts struct {
	runs       int    // solver invocations per heuristic
	profileDir string // when set, write a CPU profile here
}

// benchResult aggregates the runs of one heuristic.
type benchResult struct {
	heuristic puzzle.Heuristic
	solved    bool
	nodes     int
	backs     int
	elapsed   time.Duration
}

// benchCommand creates the bench command comparing the two heuristics.
func (c *CLI) benchCommand() *cobra.Command {
	opts := benchOpts{runs: 10}

	cmd := &cobra.Command{
		Use:   "bench <puzzle.toml>",
		Short: "Benchmark the solver heuristics",
		Long: `Bench solves the same puzzle repeatedly with each heuristic and
reports node counts, backtracks and average wall time. Node counts are
deterministic per heuristic, so the interesting comparison is MRV's
pruning against the simple scan's raw speed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBench(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.runs, "runs", opts.runs, "solver invocations per heuristic")
	cmd.Flags().StringVar(&opts.profileDir, "profile-dir", "", "write a CPU profile to this directory")

	return cmd
}

func (c *CLI) runBench(ctx context.Context, path string, opts *benchOpts) error {
	if opts.runs < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--runs must be at least 1, got %d", opts.runs)
	}
	base, err := puzzlefile.ReadPuzzleFile(path)
	if err != nil {
		return err
	}

	if opts.profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.profileDir), profile.Quiet).Stop()
	}

	prog := newProgress(c.Logger)
	heuristics := []puzzle.Heuristic{puzzle.HeuristicMRV, puzzle.HeuristicFirstEmpty}

	var results []benchResult
	for _, h := range heuristics {
		c.Logger.Debug("benchmarking", "heuristic", h.String(), "runs", opts.runs)
		res, err := benchHeuristic(ctx, base, h, opts.runs)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "bench %s with %s", path, h)
		}
		results = append(results, res)
	}

	printNewline()
	for _, res := range results {
		status := "solved"
		if !res.solved {
			status = "no solution"
		}
		printKeyValue(res.heuristic.String(),
			fmt.Sprintf("%s · %d nodes · %d backtracks · %s avg",
				status, res.nodes, res.backs,
				(res.elapsed / time.Duration(opts.runs)).Round(time.Microsecond)))
	}
	printNewline()
	prog.done(fmt.Sprintf("Benchmarked %d heuristics x %d runs", len(heuristics), opts.runs))
	return nil
}

// benchHeuristic solves fresh clones of base so runs never see each
// other's grid state. Node and backtrack counts come from the last run;
// they are identical across runs for a fixed heuristic.
func benchHeuristic(ctx context.Context, base *puzzle.Puzzle, h puzzle.Heuristic, runs int) (benchResult, error) {
	res := benchResult{heuristic: h}
	for i := 0; i < runs; i++ {
		p := base.Clone()
		solver := puzzle.NewSolver(p)
		solver.Heuristic = h
		solved, err := solver.Run(ctx)
		if err != nil {
			return res, err
		}
		stats := solver.Stats()
		res.solved = solved
		res.nodes = stats.NodesExplored
		res.backs = stats.Backtracks
		res.elapsed += stats.Elapsed
	}
	return res, nil
}
