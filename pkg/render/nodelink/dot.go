package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowplot/pkg/graph"
	"github.com/matzehuels/flowplot/pkg/render/styles"
)

// ToDOT converts a flow graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
//
// Node shapes and colors follow the theme's style table; conditional edges
// carry their outcome label and cyclic edges are drawn without a rank
// constraint so loops do not distort the hierarchy Graphviz computes.
func ToDOT(g *graph.Graph, theme styles.Theme) string {
	var buf bytes.Buffer
	buf.WriteString("digraph flow {\n")
	buf.WriteString("  rankdir=TB;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", theme.Canvas)
	buf.WriteString("  node [fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, theme), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(edgeAttrs(e, theme), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotShapes = map[string]string{
	styles.ShapeBox:     "box",
	styles.ShapeStadium: "box",
	styles.ShapeDiamond: "diamond",
	styles.ShapeHexagon: "hexagon",
}

func nodeAttrs(n *graph.Node, theme styles.Theme) []string {
	s := theme.Node(n.Kind)
	shape := dotShapes[s.Shape]
	if shape == "" {
		shape = "box"
	}
	style := "filled"
	if s.Shape == styles.ShapeBox || s.Shape == styles.ShapeStadium {
		style = "rounded,filled"
	}
	return []string{
		fmt.Sprintf("label=%q", n.ID),
		fmt.Sprintf("shape=%s", shape),
		fmt.Sprintf("style=%q", style),
		fmt.Sprintf("fillcolor=%q", s.Fill),
		fmt.Sprintf("color=%q", s.Border),
		fmt.Sprintf("fontcolor=%q", s.Text),
	}
}

func edgeAttrs(e *graph.Edge, theme styles.Theme) []string {
	s := theme.Edge(e.Kind)
	attrs := []string{fmt.Sprintf("color=%q", s.Color)}
	if s.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	if !s.Arrow {
		attrs = append(attrs, "arrowhead=none")
	}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label), fmt.Sprintf("fontcolor=%q", s.Color), "fontsize=10")
	}
	if e.Kind == graph.EdgeCyclic {
		attrs = append(attrs, "constraint=false")
	}
	return attrs
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
