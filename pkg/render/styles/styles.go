// Package styles defines the visual style tables for flow diagrams.
//
// A [Theme] is an immutable configuration value passed explicitly into the
// renderers - there is no module-level mutable state. Lookups fail closed:
// an unknown node or edge kind resolves to a neutral default style rather
// than an error, so styling can never block diagram generation.
package styles

import "github.com/matzehuels/flowplot/pkg/graph"

// Shape names used by renderers.
const (
	ShapeBox     = "box"     // rounded rectangle
	ShapeStadium = "stadium" // pill shape, used for entry points
	ShapeDiamond = "diamond" // decision point
	ShapeHexagon = "hexagon" // delegated crew unit
)

// NodeStyle describes how one node kind is drawn.
type NodeStyle struct {
	Shape  string `toml:"shape"`
	Fill   string `toml:"fill"`
	Border string `toml:"border"`
	Text   string `toml:"text"`
}

// EdgeStyle describes how one edge kind is drawn.
type EdgeStyle struct {
	Color  string `toml:"color"`
	Dashed bool   `toml:"dashed"`
	Arrow  bool   `toml:"arrow"`
}

// Theme is the complete style table for a diagram: background, node styles
// keyed by kind, edge styles keyed by kind, and neutral fallbacks.
type Theme struct {
	Background string
	Canvas     string

	nodes       map[graph.NodeKind]NodeStyle
	edges       map[graph.EdgeKind]EdgeStyle
	defaultNode NodeStyle
	defaultEdge EdgeStyle
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Background: "#FFFFFF",
		Canvas:     "#FBFBFB",
		nodes: map[graph.NodeKind]NodeStyle{
			graph.KindStart: {
				Shape:  ShapeStadium,
				Fill:   "#FF5A50",
				Border: "#C8443C",
				Text:   "#FFFFFF",
			},
			graph.KindStep: {
				Shape:  ShapeBox,
				Fill:   "#333333",
				Border: "#1A1A1A",
				Text:   "#FFFFFF",
			},
			graph.KindRouter: {
				Shape:  ShapeDiamond,
				Fill:   "#FFFFFF",
				Border: "#FF8C00",
				Text:   "#333333",
			},
			graph.KindCrew: {
				Shape:  ShapeHexagon,
				Fill:   "#6D28D9",
				Border: "#4C1D95",
				Text:   "#FFFFFF",
			},
		},
		edges: map[graph.EdgeKind]EdgeStyle{
			graph.EdgeNormal:      {Color: "#666666", Arrow: true},
			graph.EdgeConditional: {Color: "#FF8C00", Dashed: true, Arrow: true},
			graph.EdgeCyclic:      {Color: "#BBBBBB", Dashed: true, Arrow: true},
		},
		defaultNode: NodeStyle{
			Shape:  ShapeBox,
			Fill:   "#EEEEEE",
			Border: "#999999",
			Text:   "#333333",
		},
		defaultEdge: EdgeStyle{Color: "#999999", Arrow: true},
	}
}

// Node returns the style for the node kind, falling back to the neutral
// default for unknown kinds.
func (t Theme) Node(k graph.NodeKind) NodeStyle {
	if s, ok := t.nodes[k]; ok {
		return s
	}
	return t.defaultNode
}

// Edge returns the style for the edge kind, falling back to the neutral
// default for unknown kinds.
func (t Theme) Edge(k graph.EdgeKind) EdgeStyle {
	if s, ok := t.edges[k]; ok {
		return s
	}
	return t.defaultEdge
}
