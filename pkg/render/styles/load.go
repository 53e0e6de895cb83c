package styles

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowplot/pkg/graph"
)

// themeTOML is the on-disk theme override format. Every field is optional;
// unset fields keep the built-in default.
//
//	background = "#FFFFFF"
//
//	[nodes.start]
//	fill = "#FF5A50"
//	shape = "stadium"
//
//	[edges.conditional]
//	color = "#FF8C00"
//	dashed = true
type themeTOML struct {
	Background string                   `toml:"background"`
	Canvas     string                   `toml:"canvas"`
	Nodes      map[string]NodeStyle     `toml:"nodes"`
	Edges      map[string]edgeStyleTOML `toml:"edges"`
}

// edgeStyleTOML uses pointers for the boolean flags so an absent key can be
// distinguished from an explicit false.
type edgeStyleTOML struct {
	Color  string `toml:"color"`
	Dashed *bool  `toml:"dashed"`
	Arrow  *bool  `toml:"arrow"`
}

var nodeKindNames = map[string]graph.NodeKind{
	"start":  graph.KindStart,
	"step":   graph.KindStep,
	"router": graph.KindRouter,
	"crew":   graph.KindCrew,
}

var edgeKindNames = map[string]graph.EdgeKind{
	"normal":      graph.EdgeNormal,
	"conditional": graph.EdgeConditional,
	"cyclic":      graph.EdgeCyclic,
}

// Load reads a TOML theme file and overlays it on the built-in defaults.
// Unknown kind names in the file are rejected so typos surface early.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme %s: %w", path, err)
	}
	return Parse(data)
}

// Parse overlays TOML theme data on the built-in defaults.
func Parse(data []byte) (Theme, error) {
	var raw themeTOML
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}

	t := Default()
	if raw.Background != "" {
		t.Background = raw.Background
	}
	if raw.Canvas != "" {
		t.Canvas = raw.Canvas
	}
	for name, override := range raw.Nodes {
		kind, ok := nodeKindNames[name]
		if !ok {
			return Theme{}, fmt.Errorf("parse theme: unknown node kind %q", name)
		}
		t.nodes[kind] = mergeNode(t.nodes[kind], override)
	}
	for name, override := range raw.Edges {
		kind, ok := edgeKindNames[name]
		if !ok {
			return Theme{}, fmt.Errorf("parse theme: unknown edge kind %q", name)
		}
		t.edges[kind] = mergeEdge(t.edges[kind], override)
	}
	return t, nil
}

func mergeNode(base, override NodeStyle) NodeStyle {
	if override.Shape != "" {
		base.Shape = override.Shape
	}
	if override.Fill != "" {
		base.Fill = override.Fill
	}
	if override.Border != "" {
		base.Border = override.Border
	}
	if override.Text != "" {
		base.Text = override.Text
	}
	return base
}

func mergeEdge(base EdgeStyle, override edgeStyleTOML) EdgeStyle {
	if override.Color != "" {
		base.Color = override.Color
	}
	if override.Dashed != nil {
		base.Dashed = *override.Dashed
	}
	if override.Arrow != nil {
		base.Arrow = *override.Arrow
	}
	return base
}
