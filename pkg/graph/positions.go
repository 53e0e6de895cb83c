package graph

// Layout spacing constants. Positions are computed in an abstract
// coordinate space; renderers scale or translate as needed.
const (
	// NodeSpacing is the horizontal distance between adjacent nodes
	// sharing a level.
	NodeSpacing = 150.0

	// LevelGap is the vertical distance between consecutive levels.
	LevelGap = 150.0
)

// Point is a 2-D coordinate. Y grows downward with increasing level.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ComputePositions converts a level assignment into 2-D coordinates.
//
// Within a level, nodes are spaced NodeSpacing apart in declaration order
// and centered around x=0, so the k coordinates of a level are pairwise
// distinct and symmetric about the level's center. A level with a single
// node is centered at the origin of its axis. The vertical coordinate is
// level*LevelGap, producing uniform separation between tiers.
//
// The computation is deterministic: identical input yields identical
// output. There is no randomness and no iterative simulation.
func ComputePositions(g *Graph, levels map[string]int) map[string]Point {
	groups, _ := LevelGroups(g, levels)

	pos := make(map[string]Point, g.NodeCount())
	for level, ids := range groups {
		offset := float64(len(ids)-1) / 2.0
		for i, id := range ids {
			pos[id] = Point{
				X: (float64(i) - offset) * NodeSpacing,
				Y: float64(level) * LevelGap,
			}
		}
	}
	return pos
}

// Bounds returns the minimum and maximum coordinates over all positions,
// or zeroes for an empty map. Renderers use this to size the canvas.
func Bounds(pos map[string]Point) (minX, minY, maxX, maxY float64) {
	first := true
	for _, p := range pos {
		if first {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}
