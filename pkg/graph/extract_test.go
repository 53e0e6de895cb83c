package graph

import (
	"errors"
	"testing"

	"github.com/matzehuels/flowplot/pkg/flow"
)

func TestFromFlow(t *testing.T) {
	tests := []struct {
		name      string
		def       *flow.Definition
		wantErr   error
		wantNodes int
		wantEdges int
		check     func(t *testing.T, g *Graph)
	}{
		{
			name: "Kinds",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "begin"},
				{Name: "work", Triggers: []flow.Trigger{flow.Listener{Steps: []string{"begin"}}}},
				{Name: "decide", Router: true, Outcomes: []string{"yes", "no"},
					Triggers: []flow.Trigger{flow.Listener{Steps: []string{"work"}}}},
				{Name: "delegate", Crew: true,
					Triggers: []flow.Trigger{flow.RouterBranch{Router: "decide", Outcome: "yes"}}},
			}},
			wantNodes: 4,
			wantEdges: 3,
			check: func(t *testing.T, g *Graph) {
				wantKinds := map[string]NodeKind{
					"begin": KindStart, "work": KindStep,
					"decide": KindRouter, "delegate": KindCrew,
				}
				for id, want := range wantKinds {
					n, ok := g.Node(id)
					if !ok {
						t.Fatalf("node %s missing", id)
					}
					if n.Kind != want {
						t.Errorf("kind(%s) = %v, want %v", id, n.Kind, want)
					}
				}
				decide, _ := g.Node("decide")
				if len(decide.Outcomes) != 2 {
					t.Errorf("decide outcomes = %v", decide.Outcomes)
				}
			},
		},
		{
			name: "RouterKindWinsOverStart",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "decide", Router: true, Outcomes: []string{"a"}},
			}},
			wantNodes: 1,
			check: func(t *testing.T, g *Graph) {
				n, _ := g.Node("decide")
				if n.Kind != KindRouter {
					t.Errorf("kind = %v, want KindRouter", n.Kind)
				}
			},
		},
		{
			name: "BranchEdgesLabeled",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "decide", Router: true, Outcomes: []string{"yes", "no"}},
				{Name: "approve", Triggers: []flow.Trigger{flow.RouterBranch{Router: "decide", Outcome: "yes"}}},
				{Name: "reject", Triggers: []flow.Trigger{flow.RouterBranch{Router: "decide", Outcome: "no"}}},
			}},
			wantNodes: 3,
			wantEdges: 2,
			check: func(t *testing.T, g *Graph) {
				for _, e := range g.Edges() {
					if e.Kind != EdgeConditional {
						t.Errorf("edge %s->%s kind = %v, want EdgeConditional", e.From, e.To, e.Kind)
					}
					if e.Label == "" {
						t.Errorf("edge %s->%s has no outcome label", e.From, e.To)
					}
				}
			},
		},
		{
			name: "ListenerFanIn",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "a"},
				{Name: "b"},
				{Name: "join", Triggers: []flow.Trigger{
					flow.Listener{Condition: flow.ConditionAnd, Steps: []string{"a", "b"}},
				}},
			}},
			wantNodes: 3,
			wantEdges: 2,
			check: func(t *testing.T, g *Graph) {
				join, _ := g.Node("join")
				if !join.AndJoin {
					t.Error("join should carry the and-join marker")
				}
				if got := len(g.Incoming("join")); got != 2 {
					t.Errorf("incoming(join) = %d, want 2", got)
				}
			},
		},
		{
			name: "RouterWithoutOutcomes",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "decide", Router: true},
			}},
			wantErr: ErrRouterNoOutcomes,
		},
		{
			name: "UnknownUpstream",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "a", Triggers: []flow.Trigger{flow.Listener{Steps: []string{"missing"}}}},
			}},
			wantErr: ErrUnknownUpstream,
		},
		{
			name: "DuplicateStep",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "a"},
				{Name: "a"},
			}},
			wantErr: ErrDuplicateNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromFlow(tt.def)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FromFlow = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromFlow: %v", err)
			}
			if got := g.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := g.EdgeCount(); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestFromFlowPreservesOrder(t *testing.T) {
	def := &flow.Definition{Steps: []flow.Step{
		{Name: "c"}, {Name: "a"}, {Name: "b"},
	}}
	g, err := FromFlow(def)
	if err != nil {
		t.Fatalf("FromFlow: %v", err)
	}
	want := []string{"c", "a", "b"}
	for i, id := range g.Order() {
		if id != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, id, want[i])
		}
	}
}

func TestStarts(t *testing.T) {
	def := &flow.Definition{Steps: []flow.Step{
		{Name: "one"},
		{Name: "two"},
		{Name: "three", Triggers: []flow.Trigger{flow.Listener{Steps: []string{"one"}}}},
	}}
	g, err := FromFlow(def)
	if err != nil {
		t.Fatalf("FromFlow: %v", err)
	}
	starts := g.Starts()
	if len(starts) != 2 || starts[0].ID != "one" || starts[1].ID != "two" {
		t.Errorf("starts = %v", starts)
	}
}
