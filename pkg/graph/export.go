package graph

import (
	"encoding/json"
)

// =============================================================================
// Snapshot - Serialized Layout Data
// =============================================================================

// Snapshot is the canonical serialization of one analyzed flow graph:
// nodes with their computed level and position, and edges with their final
// classification. Node order is declaration order and edge order is
// insertion order, so marshaling the same flow twice yields byte-identical
// output.
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes"`
	Edges []SnapshotEdge `json:"edges"`
}

// SnapshotNode is one node with its layout results.
type SnapshotNode struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Level    int      `json:"level"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Outcomes []string `json:"outcomes,omitempty"`
}

// SnapshotEdge is one edge with its final classification.
type SnapshotEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

// Export captures the analyzed graph into a Snapshot.
func Export(g *Graph, levels map[string]int, pos map[string]Point) Snapshot {
	snap := Snapshot{
		Nodes: make([]SnapshotNode, 0, g.NodeCount()),
		Edges: make([]SnapshotEdge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		p := pos[n.ID]
		snap.Nodes = append(snap.Nodes, SnapshotNode{
			ID:       n.ID,
			Kind:     n.Kind.String(),
			Level:    levels[n.ID],
			X:        p.X,
			Y:        p.Y,
			Outcomes: n.Outcomes,
		})
	}
	for _, e := range g.Edges() {
		snap.Edges = append(snap.Edges, SnapshotEdge{
			From:  e.From,
			To:    e.To,
			Kind:  e.Kind.String(),
			Label: e.Label,
		})
	}
	return snap
}

// Marshal serializes the snapshot to pretty-printed JSON bytes.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
