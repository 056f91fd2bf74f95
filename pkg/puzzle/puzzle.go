package puzzle

import (
	"context"
	"fmt"
	"strings"
)

// Size is the fixed edge length of the grid.
const Size = 6

// Grid is the board state. 0 marks an empty cell; filled cells hold
// heights in [1, Size].
type Grid [Size][Size]int

// Clues holds the four border clue sequences. Top[c] and Bottom[c]
// describe column c read downward and upward; Left[r] and Right[r]
// describe row r read left-to-right and right-to-left. 0 means "unset"
// and only appears during setup.
type Clues struct {
	Top    [Size]int
	Right  [Size]int
	Bottom [Size]int
	Left   [Size]int
}

// Side identifies one border of the grid.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// String returns the lowercase side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// ParseSide converts a side name to a Side.
func ParseSide(name string) (Side, bool) {
	switch strings.ToLower(name) {
	case "top":
		return SideTop, true
	case "right":
		return SideRight, true
	case "bottom":
		return SideBottom, true
	case "left":
		return SideLeft, true
	}
	return 0, false
}

// Complete reports whether every clue entry is set (lies in [1, Size]).
// A puzzle is ready to solve only once its clues are complete.
func (c Clues) Complete() bool {
	for i := 0; i < Size; i++ {
		if c.Top[i] < 1 || c.Top[i] > Size ||
			c.Right[i] < 1 || c.Right[i] > Size ||
			c.Bottom[i] < 1 || c.Bottom[i] > Size ||
			c.Left[i] < 1 || c.Left[i] > Size {
			return false
		}
	}
	return true
}

// DefaultClues returns the built-in demonstration clue set. The grid it
// describes has a unique solution.
func DefaultClues() Clues {
	return Clues{
		Top:    [Size]int{1, 2, 2, 3, 4, 3},
		Right:  [Size]int{4, 3, 1, 2, 3, 2},
		Bottom: [Size]int{3, 3, 2, 1, 3, 2},
		Left:   [Size]int{1, 2, 4, 2, 3, 2},
	}
}

// Puzzle owns one grid and its clue set. The grid is mutated only
// through MakeMove, ClearCell, Reset and the solvers; direct writes are
// not part of the contract.
type Puzzle struct {
	grid  Grid
	clues Clues
	stats Stats
}

// New creates an empty puzzle with all clues unset, pending setup via
// SetClue.
func New() *Puzzle {
	return &Puzzle{}
}

// NewWithClues creates an empty puzzle with the given clue set.
func NewWithClues(c Clues) *Puzzle {
	return &Puzzle{clues: c}
}

// Cell returns the value at (row, col), or 0 for out-of-range
// coordinates.
func (p *Puzzle) Cell(row, col int) int {
	if !inBounds(row, col) {
		return 0
	}
	return p.grid[row][col]
}

// Grid returns a copy of the current board state.
func (p *Puzzle) Grid() Grid {
	return p.grid
}

// Clues returns a copy of the clue set.
func (p *Puzzle) Clues() Clues {
	return p.clues
}

// Clue returns one clue entry, or 0 for an out-of-range side or index.
func (p *Puzzle) Clue(side Side, index int) int {
	if index < 0 || index >= Size {
		return 0
	}
	switch side {
	case SideTop:
		return p.clues.Top[index]
	case SideRight:
		return p.clues.Right[index]
	case SideBottom:
		return p.clues.Bottom[index]
	case SideLeft:
		return p.clues.Left[index]
	}
	return 0
}

// Row returns a copy of row r read left-to-right.
func (p *Puzzle) Row(r int) []int {
	line := make([]int, Size)
	copy(line, p.grid[r][:])
	return line
}

// Column returns a copy of column c read top-to-bottom.
func (p *Puzzle) Column(c int) []int {
	line := make([]int, Size)
	for r := 0; r < Size; r++ {
		line[r] = p.grid[r][c]
	}
	return line
}

// Clone returns an independent copy of the puzzle. Solve statistics are
// not carried over.
func (p *Puzzle) Clone() *Puzzle {
	return &Puzzle{grid: p.grid, clues: p.clues}
}

// Reset clears every cell back to empty. Clues are kept.
func (p *Puzzle) Reset() {
	p.grid = Grid{}
}

// SetClue sets one clue entry during setup. Returns false for an
// out-of-range side, index or value; the clue set is unchanged in that
// case.
func (p *Puzzle) SetClue(side Side, index, value int) bool {
	if index < 0 || index >= Size || value < 1 || value > Size {
		return false
	}
	switch side {
	case SideTop:
		p.clues.Top[index] = value
	case SideRight:
		p.clues.Right[index] = value
	case SideBottom:
		p.clues.Bottom[index] = value
	case SideLeft:
		p.clues.Left[index] = value
	default:
		return false
	}
	return true
}

// IsValidMove reports whether placing num at (row, col) is allowed:
// num lies in [1, Size] and does not already occur elsewhere in the row
// or column. With checkVisibility set, the placement is additionally
// simulated on a copy of the grid and every completed line of that
// hypothetical grid must match its clues. The receiver is never
// mutated.
func (p *Puzzle) IsValidMove(row, col, num int, checkVisibility bool) bool {
	if !inBounds(row, col) || num < 1 || num > Size {
		return false
	}
	for i := 0; i < Size; i++ {
		if i != col && p.grid[row][i] == num {
			return false
		}
		if i != row && p.grid[i][col] == num {
			return false
		}
	}
	if checkVisibility {
		g := p.grid
		g[row][col] = num
		return satisfiesClues(&g, &p.clues)
	}
	return true
}

// MakeMove validates num at (row, col) with visibility checking and
// writes it on success. Returns false and leaves the grid unchanged for
// any invalid move.
func (p *Puzzle) MakeMove(row, col, num int) bool {
	if !p.IsValidMove(row, col, num, true) {
		return false
	}
	p.grid[row][col] = num
	return true
}

// ClearCell sets the cell at (row, col) back to empty. Clearing an
// already empty cell is a no-op; out-of-range coordinates are ignored.
func (p *Puzzle) ClearCell(row, col int) {
	if !inBounds(row, col) {
		return
	}
	p.grid[row][col] = 0
}

// CheckWin reports whether the puzzle is solved: no cell is empty and
// every line matches its clues in both directions. This is the sole
// success oracle; SatisfiesClues alone is only a prune.
func (p *Puzzle) CheckWin() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p.grid[r][c] == 0 {
				return false
			}
		}
	}
	return satisfiesClues(&p.grid, &p.clues)
}

// Solve runs the MRV-heuristic backtracking search, mutating the grid in
// place. It returns (true, nil) when a solution was found, (false, nil)
// when the search space is exhausted without one, and (false, err) for a
// cancelled context or a recovered internal fault. Statistics for the
// run are available via Stats.
func (p *Puzzle) Solve(ctx context.Context) (bool, error) {
	return p.runSolver(ctx, HeuristicMRV)
}

// SolveSimple runs the baseline first-empty-cell search. Result contract
// matches Solve; only performance differs.
func (p *Puzzle) SolveSimple(ctx context.Context) (bool, error) {
	return p.runSolver(ctx, HeuristicFirstEmpty)
}

func (p *Puzzle) runSolver(ctx context.Context, h Heuristic) (bool, error) {
	s := NewSolver(p)
	s.Heuristic = h
	solved, err := s.Run(ctx)
	p.stats = s.Stats()
	return solved, err
}

// Stats returns the statistics of the most recent Solve or SolveSimple
// call on this puzzle.
func (p *Puzzle) Stats() Stats {
	return p.stats
}

// StatsReport returns a human-readable summary of the last solve.
func (p *Puzzle) StatsReport() string {
	return p.stats.Report()
}

// String renders the board as plain text, clues included, for logs and
// debugging. Empty cells print as dots.
func (p *Puzzle) String() string {
	var b strings.Builder
	b.WriteString("    ")
	for c := 0; c < Size; c++ {
		fmt.Fprintf(&b, "%2s", clueString(p.clues.Top[c]))
	}
	b.WriteString("\n")
	for r := 0; r < Size; r++ {
		fmt.Fprintf(&b, "%2s |", clueString(p.clues.Left[r]))
		for c := 0; c < Size; c++ {
			if p.grid[r][c] == 0 {
				b.WriteString(" .")
			} else {
				fmt.Fprintf(&b, "%2d", p.grid[r][c])
			}
		}
		fmt.Fprintf(&b, " | %s\n", clueString(p.clues.Right[r]))
	}
	b.WriteString("    ")
	for c := 0; c < Size; c++ {
		fmt.Fprintf(&b, "%2s", clueString(p.clues.Bottom[c]))
	}
	return b.String()
}

func clueString(v int) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}
