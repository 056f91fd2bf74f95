package puzzle

import (
	"context"
	"fmt"
	"time"
)

// Heuristic selects the cell-ordering policy for the backtracking
// search.
type Heuristic int

const (
	// HeuristicMRV picks the empty cell with the fewest remaining
	// candidate values (ties broken in scan order). Candidate counting
	// uses uniqueness only; visibility is re-checked by the placement
	// probe inside the search loop, so counting it here would double the
	// hypothetical-grid scans per node.
	HeuristicMRV Heuristic = iota

	// HeuristicFirstEmpty picks the first empty cell in row-major order.
	HeuristicFirstEmpty
)

// String returns the heuristic name as used by CLI flags and the API.
func (h Heuristic) String() string {
	switch h {
	case HeuristicMRV:
		return "mrv"
	case HeuristicFirstEmpty:
		return "simple"
	}
	return fmt.Sprintf("heuristic(%d)", int(h))
}

// ParseHeuristic converts a heuristic name to a Heuristic.
func ParseHeuristic(name string) (Heuristic, bool) {
	switch name {
	case "mrv", "":
		return HeuristicMRV, true
	case "simple", "first-empty":
		return HeuristicFirstEmpty, true
	}
	return 0, false
}

// Stats instruments one search run. Counters reset at the start of each
// run and only grow while it is in flight.
type Stats struct {
	NodesExplored int           // cells visited, regardless of candidates tried there
	Backtracks    int           // trial placements reverted
	Start         time.Time     // when the run began
	Elapsed       time.Duration // total wall time of the run
}

// Report returns a one-line human-readable summary.
func (s Stats) Report() string {
	ratio := 0.0
	if s.NodesExplored > 0 {
		ratio = float64(s.Backtracks) / float64(s.NodesExplored)
	}
	return fmt.Sprintf("explored %d nodes, %d backtracks (ratio %.2f) in %s",
		s.NodesExplored, s.Backtracks, ratio, s.Elapsed.Round(time.Microsecond))
}

// Tracer observes search progress. Implementations must be fast: hooks
// fire on every node visit, placement and backtrack. All methods are
// called from the solving goroutine only.
type Tracer interface {
	// OnVisit fires once per cell selection (one search-tree node).
	OnVisit(row, col int)
	// OnPlace fires after a trial value passes validation and is written.
	OnPlace(row, col, num int)
	// OnBacktrack fires after a trial value is reverted to 0.
	OnBacktrack(row, col, num int)
	// OnSolved fires once when the win check passes.
	OnSolved()
}

// Solver runs a configurable backtracking search over one puzzle. The
// zero Heuristic is MRV; Tracer may be nil. A Solver is not reentrant:
// one Run at a time, exclusive ownership of the puzzle while running.
type Solver struct {
	Heuristic Heuristic
	Tracer    Tracer

	p     *Puzzle
	stats Stats
}

// NewSolver creates a solver bound to p.
func NewSolver(p *Puzzle) *Solver {
	return &Solver{p: p}
}

// Stats returns the statistics of the most recent Run.
func (s *Solver) Stats() Stats {
	return s.stats
}

// Run executes the search. It returns (true, nil) on success with the
// solution left in the grid, (false, nil) when no assignment satisfies
// the clues, and (false, err) when ctx was cancelled or an internal
// fault occurred. Ordinary exhaustion restores every trial placement;
// cancellation unwinds immediately and leaves the partial grid as-is.
// Panics inside the search are recovered here and surfaced as errors so
// a solver bug never crashes an interactive caller.
func (s *Solver) Run(ctx context.Context) (solved bool, err error) {
	s.stats = Stats{Start: time.Now()}
	defer func() {
		s.stats.Elapsed = time.Since(s.stats.Start)
		if r := recover(); r != nil {
			solved = false
			err = fmt.Errorf("internal solver fault: %v", r)
		}
	}()

	solved = s.search(ctx)
	if !solved && ctx.Err() != nil {
		return false, ctx.Err()
	}
	return solved, nil
}

// search is the recursive descent shared by both heuristics. Candidate
// values are always tried in ascending order; the fixed order keeps
// explored-node counts reproducible for identical inputs.
func (s *Solver) search(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if s.p.CheckWin() {
		if s.Tracer != nil {
			s.Tracer.OnSolved()
		}
		return true
	}

	row, col, ok := s.selectCell()
	if !ok {
		return false
	}
	s.stats.NodesExplored++
	if s.Tracer != nil {
		s.Tracer.OnVisit(row, col)
	}

	for num := 1; num <= Size; num++ {
		if ctx.Err() != nil {
			return false
		}
		if !s.p.IsValidMove(row, col, num, true) {
			continue
		}
		s.p.grid[row][col] = num
		if s.Tracer != nil {
			s.Tracer.OnPlace(row, col, num)
		}
		if s.search(ctx) {
			return true
		}
		if ctx.Err() != nil {
			// Cancelled below us: keep the partial state.
			return false
		}
		s.p.grid[row][col] = 0
		s.stats.Backtracks++
		if s.Tracer != nil {
			s.Tracer.OnBacktrack(row, col, num)
		}
	}
	return false
}

func (s *Solver) selectCell() (int, int, bool) {
	if s.Heuristic == HeuristicFirstEmpty {
		return s.p.firstEmpty()
	}
	return s.p.mostConstrained()
}

// firstEmpty returns the first empty cell in row-major order.
func (p *Puzzle) firstEmpty() (int, int, bool) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p.grid[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// mostConstrained returns the empty cell with the fewest candidate
// values under the uniqueness check, ignoring cells with no candidates
// at all (the search discovers those dead ends by exhausting moves).
// Ties go to the first cell in scan order.
func (p *Puzzle) mostConstrained() (int, int, bool) {
	bestRow, bestCol, bestCount := 0, 0, Size+1
	found := false
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p.grid[r][c] != 0 {
				continue
			}
			n := p.candidateCount(r, c)
			if n > 0 && n < bestCount {
				bestRow, bestCol, bestCount = r, c, n
				found = true
			}
		}
	}
	return bestRow, bestCol, found
}

func (p *Puzzle) candidateCount(row, col int) int {
	n := 0
	for num := 1; num <= Size; num++ {
		if p.IsValidMove(row, col, num, false) {
			n++
		}
	}
	return n
}
