package puzzle

import (
	"context"
	"strings"
	"testing"
)

// unsatisfiableClues demands every building visible from both ends of
// every line at once, which no Latin square can do.
func unsatisfiableClues() Clues {
	c := Clues{}
	for i := 0; i < Size; i++ {
		c.Top[i], c.Right[i], c.Bottom[i], c.Left[i] = Size, Size, Size, Size
	}
	return c
}

// verifySolution checks the full solved-grid invariants: every row and
// column a permutation of 1..Size and every directional clue matched.
func verifySolution(t *testing.T, p *Puzzle) {
	t.Helper()
	for r := 0; r < Size; r++ {
		seenRow := [Size + 1]bool{}
		seenCol := [Size + 1]bool{}
		for c := 0; c < Size; c++ {
			rv, cv := p.Cell(r, c), p.Cell(c, r)
			if rv < 1 || rv > Size || seenRow[rv] {
				t.Fatalf("row %d is not a permutation: %v", r, p.Row(r))
			}
			if cv < 1 || cv > Size || seenCol[cv] {
				t.Fatalf("column %d is not a permutation: %v", r, p.Column(r))
			}
			seenRow[rv], seenCol[cv] = true, true
		}
	}
	clues := p.Clues()
	for i := 0; i < Size; i++ {
		col := p.Column(i)
		if got := CountVisible(col); got != clues.Top[i] {
			t.Errorf("top[%d]: visible %d, clue %d", i, got, clues.Top[i])
		}
		if got := CountVisible(reversed(col)); got != clues.Bottom[i] {
			t.Errorf("bottom[%d]: visible %d, clue %d", i, got, clues.Bottom[i])
		}
		row := p.Row(i)
		if got := CountVisible(row); got != clues.Left[i] {
			t.Errorf("left[%d]: visible %d, clue %d", i, got, clues.Left[i])
		}
		if got := CountVisible(reversed(row)); got != clues.Right[i] {
			t.Errorf("right[%d]: visible %d, clue %d", i, got, clues.Right[i])
		}
	}
}

func reversed(line []int) []int {
	out := make([]int, len(line))
	for i, v := range line {
		out[len(line)-1-i] = v
	}
	return out
}

func TestSolveDefaultPuzzle(t *testing.T) {
	p := NewWithClues(DefaultClues())
	if p.CheckWin() {
		t.Fatal("CheckWin true before solving")
	}

	solved, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !solved {
		t.Fatal("default puzzle reported unsolvable")
	}
	if !p.CheckWin() {
		t.Fatal("CheckWin false after successful solve")
	}
	verifySolution(t, p)

	stats := p.Stats()
	if stats.NodesExplored < Size*Size {
		t.Errorf("NodesExplored = %d, want at least %d", stats.NodesExplored, Size*Size)
	}
	if stats.Backtracks < 0 {
		t.Errorf("Backtracks = %d, want >= 0", stats.Backtracks)
	}
	if stats.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", stats.Elapsed)
	}
}

func TestSolveSimpleDefaultPuzzle(t *testing.T) {
	p := NewWithClues(DefaultClues())
	solved, err := p.SolveSimple(context.Background())
	if err != nil {
		t.Fatalf("SolveSimple: %v", err)
	}
	if !solved {
		t.Fatal("default puzzle reported unsolvable by first-empty search")
	}
	verifySolution(t, p)
}

func TestHeuristicsAgree(t *testing.T) {
	tests := []struct {
		name  string
		clues Clues
		want  bool
	}{
		{name: "Solvable", clues: DefaultClues(), want: true},
		{name: "Unsatisfiable", clues: unsatisfiableClues(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mrv := NewWithClues(tt.clues)
			simple := NewWithClues(tt.clues)

			gotMRV, err := mrv.Solve(context.Background())
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			gotSimple, err := simple.SolveSimple(context.Background())
			if err != nil {
				t.Fatalf("SolveSimple: %v", err)
			}
			if gotMRV != tt.want || gotSimple != tt.want {
				t.Errorf("mrv=%v simple=%v, want both %v", gotMRV, gotSimple, tt.want)
			}
		})
	}
}

func TestSolveRestoresGridOnFailure(t *testing.T) {
	p := NewWithClues(unsatisfiableClues())
	solved, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if solved {
		t.Fatal("unsatisfiable clues reported solved")
	}
	if p.Grid() != (Grid{}) {
		t.Errorf("grid not restored to empty after exhaustive failure:\n%s", p)
	}
	if p.Stats().Backtracks < 0 {
		t.Error("negative backtrack count")
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewWithClues(DefaultClues())
	solved, err := p.Solve(ctx)
	if solved {
		t.Fatal("cancelled solve reported success")
	}
	if err == nil {
		t.Fatal("cancelled solve must return an error")
	}
}

func TestSolverDeterministicNodeCounts(t *testing.T) {
	a := NewWithClues(DefaultClues())
	b := NewWithClues(DefaultClues())
	if _, err := a.Solve(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Solve(context.Background()); err != nil {
		t.Fatal(err)
	}
	if a.Stats().NodesExplored != b.Stats().NodesExplored ||
		a.Stats().Backtracks != b.Stats().Backtracks {
		t.Errorf("identical inputs explored differently: %+v vs %+v", a.Stats(), b.Stats())
	}
	if a.Grid() != b.Grid() {
		t.Error("identical inputs produced different solutions")
	}
}

func TestSolverTracerHooks(t *testing.T) {
	rec := &recordingTracer{}
	p := NewWithClues(DefaultClues())
	s := NewSolver(p)
	s.Tracer = rec

	solved, err := s.Run(context.Background())
	if err != nil || !solved {
		t.Fatalf("Run = (%v, %v)", solved, err)
	}
	if rec.visits != s.Stats().NodesExplored {
		t.Errorf("OnVisit fired %d times, NodesExplored = %d", rec.visits, s.Stats().NodesExplored)
	}
	if rec.backtracks != s.Stats().Backtracks {
		t.Errorf("OnBacktrack fired %d times, Backtracks = %d", rec.backtracks, s.Stats().Backtracks)
	}
	if rec.places < Size*Size {
		t.Errorf("OnPlace fired %d times, want at least %d", rec.places, Size*Size)
	}
	if rec.solves != 1 {
		t.Errorf("OnSolved fired %d times, want 1", rec.solves)
	}
}

type recordingTracer struct {
	visits, places, backtracks, solves int
}

func (r *recordingTracer) OnVisit(int, int)          { r.visits++ }
func (r *recordingTracer) OnPlace(int, int, int)     { r.places++ }
func (r *recordingTracer) OnBacktrack(int, int, int) { r.backtracks++ }
func (r *recordingTracer) OnSolved()                 { r.solves++ }

func TestStatsReport(t *testing.T) {
	// Zero nodes must not divide by zero.
	if got := (Stats{}).Report(); got == "" {
		t.Error("empty stats produced no report")
	}

	s := Stats{NodesExplored: 40, Backtracks: 10}
	got := s.Report()
	want := "ratio 0.25"
	if !strings.Contains(got, want) {
		t.Errorf("Report() = %q, want it to contain %q", got, want)
	}
}

func TestParseHeuristic(t *testing.T) {
	tests := []struct {
		in   string
		want Heuristic
		ok   bool
	}{
		{"mrv", HeuristicMRV, true},
		{"", HeuristicMRV, true},
		{"simple", HeuristicFirstEmpty, true},
		{"first-empty", HeuristicFirstEmpty, true},
		{"magic", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseHeuristic(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseHeuristic(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
