package styles

import "github.com/matzehuels/flowplot/pkg/graph"

// LegendEntry is one row of the legend overlay: a swatch description and
// a human-readable caption.
type LegendEntry struct {
	Kind   string // "node" or "edge"
	Shape  string // node swatches only
	Fill   string // node fill or edge line color
	Border string // node swatches only
	Dashed bool   // edge swatches only
	Label  string
}

// Legend derives the legend rows for the theme. The sequence is built once
// per render call and covers every node and edge category the style table
// distinguishes, in a fixed presentation order.
func Legend(t Theme) []LegendEntry {
	nodeOrder := []struct {
		kind  graph.NodeKind
		label string
	}{
		{graph.KindStart, "Start Method"},
		{graph.KindStep, "Method"},
		{graph.KindRouter, "Router"},
		{graph.KindCrew, "Crew Method"},
	}
	edgeOrder := []struct {
		kind  graph.EdgeKind
		label string
	}{
		{graph.EdgeNormal, "Trigger"},
		{graph.EdgeConditional, "Router Branch"},
		{graph.EdgeCyclic, "Loop Back"},
	}

	entries := make([]LegendEntry, 0, len(nodeOrder)+len(edgeOrder))
	for _, n := range nodeOrder {
		s := t.Node(n.kind)
		entries = append(entries, LegendEntry{
			Kind:   "node",
			Shape:  s.Shape,
			Fill:   s.Fill,
			Border: s.Border,
			Label:  n.label,
		})
	}
	for _, e := range edgeOrder {
		s := t.Edge(e.kind)
		entries = append(entries, LegendEntry{
			Kind:   "edge",
			Fill:   s.Color,
			Dashed: s.Dashed,
			Label:  e.label,
		})
	}
	return entries
}
