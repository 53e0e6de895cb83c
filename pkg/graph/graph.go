// Package graph implements the flow-graph analysis stages of the plot
// pipeline: extraction from a flow definition, cycle-tolerant level
// assignment, and overlap-free coordinate computation.
//
// The pipeline is a single synchronous pass:
//
//	g, err := graph.FromFlow(def)   // extract nodes and edges
//	levels := graph.AssignLevels(g) // hierarchical tiers, back-edges marked cyclic
//	pos := graph.ComputePositions(g, levels)
//
// All structures are owned by one render call and never shared across calls.
// Graph is not safe for concurrent use.
package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownUpstream is returned by [FromFlow] when a trigger references
	// a step name that is not declared in the flow.
	ErrUnknownUpstream = errors.New("trigger references unknown upstream step")

	// ErrRouterNoOutcomes is returned by [FromFlow] when a router step
	// declares zero outcome names.
	ErrRouterNoOutcomes = errors.New("router declares no outcomes")

	// ErrDuplicateNode is returned by [FromFlow] when two steps share a name.
	ErrDuplicateNode = errors.New("duplicate step name")

	// ErrEmptyNodeID is returned by [FromFlow] when a step name is empty.
	ErrEmptyNodeID = errors.New("step name must not be empty")
)

// NodeKind classifies a flow-graph node for styling and layout.
type NodeKind int

const (
	// KindStep is a regular execution step activated by upstream triggers.
	KindStep NodeKind = iota
	// KindStart is an entry point: a step with no trigger declarations.
	KindStart
	// KindRouter is a routing decision point with named outcome branches.
	KindRouter
	// KindCrew is a step that delegates execution to a composed sub-system.
	KindCrew
)

// String returns the kind name used in serialization and legends.
func (k NodeKind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindRouter:
		return "router"
	case KindCrew:
		return "crew"
	default:
		return "step"
	}
}

// EdgeKind classifies a flow-graph edge for styling and level assignment.
type EdgeKind int

const (
	// EdgeNormal is an unconditional listener edge.
	EdgeNormal EdgeKind = iota
	// EdgeConditional is a router outcome branch, labeled with the outcome.
	EdgeConditional
	// EdgeCyclic is an edge reclassified during level assignment because
	// enforcing level monotonicity across it would require decreasing a
	// level already fixed. Cyclic edges are excluded from level computation.
	EdgeCyclic
)

// String returns the kind name used in serialization and legends.
func (k EdgeKind) String() string {
	switch k {
	case EdgeConditional:
		return "conditional"
	case EdgeCyclic:
		return "cyclic"
	default:
		return "normal"
	}
}

// Node is a vertex of the extracted flow graph. Nodes are created once per
// extraction pass and immutable thereafter.
type Node struct {
	ID       string   // Unique step name (also used as display label)
	Kind     NodeKind // Visual/structural classification
	Outcomes []string // Router outcome names in declaration order (routers only)
	AndJoin  bool     // Step requires all upstream listeners to complete
}

// Edge is a directed connection between two nodes. Multiple edges between
// the same pair are permitted (different router outcomes).
type Edge struct {
	From  string   // Source node ID
	To    string   // Target node ID
	Kind  EdgeKind // Classification; AssignLevels may rewrite to EdgeCyclic
	Label string   // Router outcome that activates the edge (conditional only)
}

// Graph is a directed flow graph with stable declaration order.
// The zero value is not usable - use [New] or [FromFlow].
type Graph struct {
	nodes    map[string]*Node
	order    []string // node IDs in declaration order
	edges    []*Edge  // insertion order
	incoming map[string][]*Edge
	outgoing map[string][]*Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		incoming: make(map[string][]*Edge),
		outgoing: make(map[string][]*Edge),
	}
}

// AddNode adds a node to the graph, preserving declaration order.
// Returns ErrEmptyNodeID or ErrDuplicateNode on contract violations.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownUpstream if either endpoint is missing.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUpstream, e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUpstream, e.To)
	}
	edge := &e
	g.edges = append(g.edges, edge)
	g.outgoing[edge.From] = append(g.outgoing[edge.From], edge)
	g.incoming[edge.To] = append(g.incoming[edge.To], edge)
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Order returns node IDs in declaration order. The returned slice must not
// be modified.
func (g *Graph) Order() []string { return g.order }

// Edges returns all edges in insertion order. The returned slice must not
// be modified; the pointed-to edges are the graph's own (AssignLevels
// rewrites their Kind in place).
func (g *Graph) Edges() []*Edge { return g.edges }

// Incoming returns the edges targeting the node, in insertion order.
func (g *Graph) Incoming(id string) []*Edge { return g.incoming[id] }

// Outgoing returns the edges originating at the node, in insertion order.
func (g *Graph) Outgoing(id string) []*Edge { return g.outgoing[id] }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// CyclicEdgeCount returns the number of edges currently classified cyclic.
// Before AssignLevels runs this is always zero.
func (g *Graph) CyclicEdgeCount() int {
	count := 0
	for _, e := range g.edges {
		if e.Kind == EdgeCyclic {
			count++
		}
	}
	return count
}

// Starts returns the nodes of kind KindStart in declaration order.
func (g *Graph) Starts() []*Node {
	var starts []*Node
	for _, id := range g.order {
		if n := g.nodes[id]; n.Kind == KindStart {
			starts = append(starts, n)
		}
	}
	return starts
}
