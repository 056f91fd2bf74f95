// Package trace records backtracking search progress as a tree and
// renders it with Graphviz.
//
// A [Recorder] plugs into the solver's Tracer hook and captures every
// trial placement as a node. Placements that were backtracked keep a
// failed marker; the placements still on the path when the solver
// succeeds form the solution branch. The resulting tree can be emitted
// as DOT text or rendered to SVG/PNG for inspecting how a heuristic
// moves through the search space.
package trace

import "fmt"

// DefaultMaxNodes caps recorded placements; deep searches can explore
// far more nodes than any diagram stays readable at.
const DefaultMaxNodes = 2000

// Node is one recorded trial placement.
type Node struct {
	ID       int
	Row, Col int
	Num      int
	Failed   bool // placement was backtracked
	Solution bool // placement is part of the final solution path
}

// Edge connects a placement to the placement tried directly beneath it.
type Edge struct {
	From, To int
}

// Recorder implements puzzle.Tracer and accumulates the explored search
// tree. The zero value is not usable; create one with NewRecorder. Not
// safe for concurrent use, matching the solver's single-goroutine hook
// contract.
type Recorder struct {
	MaxNodes int

	nodes     []Node
	edges     []Edge
	stack     []int // node IDs on the current search path, -1 entries above the cap
	truncated bool
}

// NewRecorder creates a recorder with the default node cap.
func NewRecorder() *Recorder {
	return &Recorder{MaxNodes: DefaultMaxNodes}
}

// Nodes returns the recorded placements in exploration order.
func (r *Recorder) Nodes() []Node {
	return r.nodes
}

// Edges returns the recorded tree edges.
func (r *Recorder) Edges() []Edge {
	return r.edges
}

// Truncated reports whether the node cap cut the recording short.
func (r *Recorder) Truncated() bool {
	return r.truncated
}

// OnVisit is part of the puzzle.Tracer interface. Cell selection order
// is implied by the placement tree, so nothing is recorded here.
func (r *Recorder) OnVisit(row, col int) {}

// OnPlace records a trial placement under the current path.
func (r *Recorder) OnPlace(row, col, num int) {
	if len(r.nodes) >= r.MaxNodes {
		r.truncated = true
		r.stack = append(r.stack, -1)
		return
	}
	id := len(r.nodes)
	r.nodes = append(r.nodes, Node{ID: id, Row: row, Col: col, Num: num})
	if parent := r.parent(); parent >= 0 {
		r.edges = append(r.edges, Edge{From: parent, To: id})
	}
	r.stack = append(r.stack, id)
}

// OnBacktrack marks the top placement failed and pops it.
func (r *Recorder) OnBacktrack(row, col, num int) {
	if len(r.stack) == 0 {
		return
	}
	id := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if id >= 0 {
		r.nodes[id].Failed = true
	}
}

// OnSolved marks every placement still on the path as the solution
// branch.
func (r *Recorder) OnSolved() {
	for _, id := range r.stack {
		if id >= 0 {
			r.nodes[id].Solution = true
		}
	}
}

// parent returns the nearest recorded ancestor on the stack, or -1 when
// the placement hangs off the root.
func (r *Recorder) parent() int {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i] >= 0 {
			return r.stack[i]
		}
	}
	return -1
}

// Label returns the display label for a node, e.g. "(2,3)=5".
func (n Node) Label() string {
	return fmt.Sprintf("(%d,%d)=%d", n.Row, n.Col, n.Num)
}
