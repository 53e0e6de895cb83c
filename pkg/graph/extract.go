package graph

import (
	"fmt"

	"github.com/matzehuels/flowplot/pkg/flow"
)

// FromFlow extracts a plain directed graph from a flow definition.
//
// Every declared step becomes exactly one node. The node kind is KindRouter
// for routing decision points, KindCrew for steps delegating to a composed
// sub-system, KindStart for steps with no trigger declarations, and KindStep
// otherwise. A step that is both a router (or crew) and trigger-free keeps
// its router/crew kind - the structural classification wins over the entry
// marker for styling.
//
// Each Listener trigger emits one EdgeNormal edge per referenced upstream.
// Each RouterBranch trigger emits one EdgeConditional edge from the router,
// labeled with the outcome name.
//
// FromFlow is a pure transformation: it performs only existence checks
// (unknown upstream references, routers with zero outcomes) and never
// mutates the definition. Violations abort extraction with a wrapped
// sentinel error.
func FromFlow(def *flow.Definition) (*Graph, error) {
	g := New()

	for _, s := range def.Steps {
		if s.Router && len(s.Outcomes) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrRouterNoOutcomes, s.Name)
		}
		n := Node{ID: s.Name, Kind: classify(s)}
		if s.Router {
			n.Outcomes = s.Outcomes
		}
		n.AndJoin = andJoin(s)
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}

	for _, s := range def.Steps {
		for _, t := range s.Triggers {
			edges, err := triggerEdges(s.Name, t)
			if err != nil {
				return nil, err
			}
			for _, e := range edges {
				if err := g.AddEdge(e); err != nil {
					return nil, fmt.Errorf("step %s: %w", s.Name, err)
				}
			}
		}
	}

	return g, nil
}

func classify(s flow.Step) NodeKind {
	switch {
	case s.Router:
		return KindRouter
	case s.Crew:
		return KindCrew
	case s.IsStart():
		return KindStart
	default:
		return KindStep
	}
}

// andJoin reports whether any listener on the step requires all of its
// upstreams (an "and" join). Surfaced in hover titles only.
func andJoin(s flow.Step) bool {
	for _, t := range s.Triggers {
		if l, ok := t.(flow.Listener); ok && l.Condition == flow.ConditionAnd && len(l.Steps) > 1 {
			return true
		}
	}
	return false
}

func triggerEdges(step string, t flow.Trigger) ([]Edge, error) {
	switch t := t.(type) {
	case flow.Listener:
		edges := make([]Edge, len(t.Steps))
		for i, up := range t.Steps {
			edges[i] = Edge{From: up, To: step, Kind: EdgeNormal}
		}
		return edges, nil
	case flow.RouterBranch:
		return []Edge{{From: t.Router, To: step, Kind: EdgeConditional, Label: t.Outcome}}, nil
	default:
		return nil, fmt.Errorf("step %s: unsupported trigger type %T", step, t)
	}
}
