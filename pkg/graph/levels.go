package graph

// Node visitation states for the iterative depth-first resolution.
const (
	unvisited = iota
	inProgress
	resolved
)

// frame is one entry of the explicit resolution stack: the node being
// resolved and the index of the next incoming edge to examine.
type frame struct {
	id   string
	next int
}

// AssignLevels assigns every node an integer hierarchical level.
//
// Nodes are processed in declaration order. For each node, the levels of all
// its predecessors are resolved first (depth-first, using an explicit work
// stack rather than recursion, so arbitrarily deep graphs cannot overflow
// the call stack). The node's own level is then one more than the maximum
// predecessor level, or 0 if it has no predecessors.
//
// When resolution re-enters a node that is still being resolved, the edge
// closing that cycle is reclassified as EdgeCyclic in place and excluded
// from the level computation. This guarantees termination on arbitrary
// graphs, including self-loops, at the cost of not enforcing level
// monotonicity across cyclic edges. For every edge left non-cyclic,
// level(To) >= level(From)+1 holds.
//
// Ties between predecessors resolve by numeric max, so the deepest
// predecessor chain dominates regardless of declaration order. The result
// is deterministic for identical input.
func AssignLevels(g *Graph) map[string]int {
	state := make(map[string]int, g.NodeCount())
	levels := make(map[string]int, g.NodeCount())

	for _, id := range g.Order() {
		if state[id] != unvisited {
			continue
		}
		resolve(g, id, state, levels)
	}
	return levels
}

// resolve runs one depth-first resolution rooted at id.
// Each node is pushed at most once per pass, so the total work across all
// roots is proportional to nodes plus edges.
func resolve(g *Graph, id string, state, levels map[string]int) {
	stack := []frame{{id: id}}
	state[id] = inProgress

	for len(stack) > 0 {
		top := len(stack) - 1
		cur := stack[top].id
		in := g.Incoming(cur)

		pushed := false
		for stack[top].next < len(in) {
			e := in[stack[top].next]
			stack[top].next++

			if e.Kind == EdgeCyclic {
				continue
			}
			switch state[e.From] {
			case unvisited:
				state[e.From] = inProgress
				stack = append(stack, frame{id: e.From})
				pushed = true
			case inProgress:
				// The predecessor is an ancestor on the current
				// resolution path (or the node itself): this edge
				// closes a cycle.
				e.Kind = EdgeCyclic
			}
			if pushed {
				break
			}
		}
		if pushed {
			continue
		}

		// All non-cyclic predecessors resolved.
		level := 0
		for _, e := range g.Incoming(cur) {
			if e.Kind == EdgeCyclic {
				continue
			}
			if l := levels[e.From] + 1; l > level {
				level = l
			}
		}
		levels[cur] = level
		state[cur] = resolved
		stack = stack[:top]
	}
}

// LevelGroups partitions node IDs by level, preserving declaration order
// within each level. The second return value is the maximum level present
// (0 for an empty graph).
func LevelGroups(g *Graph, levels map[string]int) (map[int][]string, int) {
	groups := make(map[int][]string)
	maxLevel := 0
	for _, id := range g.Order() {
		l := levels[id]
		groups[l] = append(groups[l], id)
		if l > maxLevel {
			maxLevel = l
		}
	}
	return groups, maxLevel
}
