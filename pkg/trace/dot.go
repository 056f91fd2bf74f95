package trace

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a recorded search tree to Graphviz DOT format. The
// solution branch is filled green, backtracked placements grey and
// dashed. A synthetic root anchors the first-level candidates so the
// tree renders as one component.
func ToDOT(r *Recorder) string {
	var buf bytes.Buffer
	buf.WriteString("digraph search {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")
	buf.WriteString("  root [label=\"start\", shape=ellipse, fillcolor=lightblue];\n")

	for _, n := range r.Nodes() {
		fmt.Fprintf(&buf, "  n%d [label=%q%s];\n", n.ID, n.Label(), nodeAttrs(n))
	}

	buf.WriteString("\n")
	hasParent := make(map[int]bool, len(r.Edges()))
	for _, e := range r.Edges() {
		hasParent[e.To] = true
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.From, e.To)
	}
	for _, n := range r.Nodes() {
		if !hasParent[n.ID] {
			fmt.Fprintf(&buf, "  root -> n%d;\n", n.ID)
		}
	}

	if r.Truncated() {
		buf.WriteString("  truncated [label=\"... truncated\", shape=plaintext];\n")
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n Node) string {
	switch {
	case n.Solution:
		return ", fillcolor=palegreen"
	case n.Failed:
		return ", style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=grey25"
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
