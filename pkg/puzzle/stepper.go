package puzzle

import "time"

// StepStatus is the state of an incremental search after a Step call.
type StepStatus int

const (
	// StepRunning means the search has more work to do.
	StepRunning StepStatus = iota
	// StepSolved means the grid now holds a solution.
	StepSolved
	// StepExhausted means the search space is used up with no solution;
	// every trial placement has been reverted.
	StepExhausted
	// StepCancelled means Cancel was called; the grid keeps whatever
	// partial state existed at that point.
	StepCancelled
)

// String returns a short status name.
func (s StepStatus) String() string {
	switch s {
	case StepRunning:
		return "running"
	case StepSolved:
		return "solved"
	case StepExhausted:
		return "exhausted"
	case StepCancelled:
		return "cancelled"
	}
	return "unknown"
}

// frame is one level of the explicit search stack: a selected cell and
// the next candidate value to try there.
type frame struct {
	row, col int
	next     int
}

// Stepper runs the same backtracking search as Solver in an iterative
// form that performs roughly one search-tree node of work per Step call,
// so callers can interleave solving with rendering. The exploration
// order and the stats counters match the recursive solver.
//
// A Stepper owns its puzzle's grid exclusively until it reports a
// terminal status or is cancelled.
type Stepper struct {
	p         *Puzzle
	heuristic Heuristic
	tracer    Tracer
	stack     []frame
	status    StepStatus
	started   bool
	cancelled bool
	stats     Stats
}

// NewStepper creates an incremental search over p using the given
// heuristic.
func NewStepper(p *Puzzle, h Heuristic) *Stepper {
	return &Stepper{
		p:         p,
		heuristic: h,
		status:    StepRunning,
		stats:     Stats{Start: time.Now()},
	}
}

// SetTracer attaches an optional search observer. Must be called before
// the first Step.
func (st *Stepper) SetTracer(t Tracer) {
	st.tracer = t
}

// Status returns the current search state without doing any work.
func (st *Stepper) Status() StepStatus {
	return st.status
}

// Stats returns the counters accumulated so far.
func (st *Stepper) Stats() Stats {
	s := st.stats
	s.Elapsed = time.Since(s.Start)
	return s
}

// Cancel stops the search at the next Step call. The grid is left in
// its current partial state; no restoration happens on cancellation.
func (st *Stepper) Cancel() {
	st.cancelled = true
}

// Step advances the search by one node expansion and returns the new
// status. Calling Step after a terminal status is a no-op returning that
// status.
func (st *Stepper) Step() StepStatus {
	if st.status != StepRunning {
		return st.status
	}
	if st.cancelled {
		st.status = StepCancelled
		return st.status
	}

	if !st.started {
		st.started = true
		if st.p.CheckWin() {
			return st.finish(StepSolved)
		}
		if !st.push() {
			return st.finish(StepExhausted)
		}
		return StepRunning
	}

	f := &st.stack[len(st.stack)-1]
	for num := f.next; num <= Size; num++ {
		if !st.p.IsValidMove(f.row, f.col, num, true) {
			continue
		}
		st.p.grid[f.row][f.col] = num
		f.next = num + 1
		if st.tracer != nil {
			st.tracer.OnPlace(f.row, f.col, num)
		}
		if st.p.CheckWin() {
			return st.finish(StepSolved)
		}
		if st.push() {
			return StepRunning
		}
		// No selectable cell below this placement: immediate dead end.
		st.p.grid[f.row][f.col] = 0
		st.stats.Backtracks++
		if st.tracer != nil {
			st.tracer.OnBacktrack(f.row, f.col, num)
		}
	}

	// Candidates exhausted at this cell: pop and revert the parent's
	// placement so it moves on to its next candidate.
	st.stack = st.stack[:len(st.stack)-1]
	if len(st.stack) == 0 {
		return st.finish(StepExhausted)
	}
	parent := &st.stack[len(st.stack)-1]
	num := st.p.grid[parent.row][parent.col]
	st.p.grid[parent.row][parent.col] = 0
	st.stats.Backtracks++
	if st.tracer != nil {
		st.tracer.OnBacktrack(parent.row, parent.col, num)
	}
	return StepRunning
}

// push selects the next cell and opens a frame for it. Returns false
// when no cell is selectable (grid full, or no empty cell has any
// uniqueness candidate under MRV).
func (st *Stepper) push() bool {
	var row, col int
	var ok bool
	if st.heuristic == HeuristicFirstEmpty {
		row, col, ok = st.p.firstEmpty()
	} else {
		row, col, ok = st.p.mostConstrained()
	}
	if !ok {
		return false
	}
	st.stack = append(st.stack, frame{row: row, col: col, next: 1})
	st.stats.NodesExplored++
	if st.tracer != nil {
		st.tracer.OnVisit(row, col)
	}
	return true
}

func (st *Stepper) finish(status StepStatus) StepStatus {
	st.status = status
	st.stats.Elapsed = time.Since(st.stats.Start)
	if status == StepSolved && st.tracer != nil {
		st.tracer.OnSolved()
	}
	return status
}
