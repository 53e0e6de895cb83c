package graph

import (
	"bytes"
	"testing"

	"github.com/matzehuels/flowplot/pkg/flow"
)

// listen is shorthand for a single-upstream listener trigger.
func listen(upstreams ...string) flow.Trigger {
	return flow.Listener{Steps: upstreams}
}

func mustExtract(t *testing.T, def *flow.Definition) *Graph {
	t.Helper()
	g, err := FromFlow(def)
	if err != nil {
		t.Fatalf("FromFlow: %v", err)
	}
	return g
}

func TestAssignLevels(t *testing.T) {
	tests := []struct {
		name       string
		def        *flow.Definition
		want       map[string]int
		wantCyclic int
	}{
		{
			name: "Chain",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "a"},
				{Name: "b", Triggers: []flow.Trigger{listen("a")}},
				{Name: "c", Triggers: []flow.Trigger{listen("b")}},
			}},
			want: map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name: "Diamond",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "start"},
				{Name: "stepA", Triggers: []flow.Trigger{listen("start")}},
				{Name: "stepB", Triggers: []flow.Trigger{listen("start", "stepA")}},
			}},
			want: map[string]int{"start": 0, "stepA": 1, "stepB": 2},
		},
		{
			name: "DeepestChainDominates",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "start"},
				{Name: "a", Triggers: []flow.Trigger{listen("start")}},
				{Name: "b", Triggers: []flow.Trigger{listen("a")}},
				{Name: "join", Triggers: []flow.Trigger{listen("start", "b")}},
			}},
			want: map[string]int{"start": 0, "a": 1, "b": 2, "join": 3},
		},
		{
			name: "TwoStarts",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "left"},
				{Name: "right"},
				{Name: "merge", Triggers: []flow.Trigger{listen("left", "right")}},
			}},
			want: map[string]int{"left": 0, "right": 0, "merge": 1},
		},
		{
			name: "SelfLoop",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "a", Triggers: []flow.Trigger{listen("a")}},
			}},
			want:       map[string]int{"a": 0},
			wantCyclic: 1,
		},
		{
			name: "DirectCycle",
			def: &flow.Definition{Steps: []flow.Step{
				{Name: "a", Triggers: []flow.Trigger{listen("b")}},
				{Name: "b", Triggers: []flow.Trigger{listen("a")}},
			}},
			// Resolving a pushes b first, so the edge a->b closes the
			// cycle and b keeps level 0.
			want:       map[string]int{"b": 0, "a": 1},
			wantCyclic: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustExtract(t, tt.def)
			levels := AssignLevels(g)

			for id, want := range tt.want {
				if got := levels[id]; got != want {
					t.Errorf("level(%s) = %d, want %d", id, got, want)
				}
			}
			if got := g.CyclicEdgeCount(); got != tt.wantCyclic {
				t.Errorf("cyclic edges = %d, want %d", got, tt.wantCyclic)
			}

			// Monotonicity over every edge left non-cyclic.
			for _, e := range g.Edges() {
				if e.Kind == EdgeCyclic {
					continue
				}
				if levels[e.To] < levels[e.From]+1 {
					t.Errorf("edge %s->%s: level %d -> %d violates monotonicity",
						e.From, e.To, levels[e.From], levels[e.To])
				}
			}
		})
	}
}

func TestAssignLevelsDirectCycleExactlyOneCyclic(t *testing.T) {
	g := mustExtract(t, &flow.Definition{Steps: []flow.Step{
		{Name: "a", Triggers: []flow.Trigger{listen("b")}},
		{Name: "b", Triggers: []flow.Trigger{listen("a")}},
	}})
	AssignLevels(g)

	var cyclic, normal int
	for _, e := range g.Edges() {
		switch e.Kind {
		case EdgeCyclic:
			cyclic++
		case EdgeNormal:
			normal++
		}
	}
	if cyclic != 1 || normal != 1 {
		t.Errorf("cyclic = %d, normal = %d, want exactly one of each", cyclic, normal)
	}
}

func TestAssignLevelsRouterLoopTerminates(t *testing.T) {
	// Both router outcomes loop back to an ancestor. The pass must
	// terminate and keep the conditional classification on the branches.
	def := &flow.Definition{Steps: []flow.Step{
		{Name: "start"},
		{Name: "work", Triggers: []flow.Trigger{
			listen("start"),
			flow.RouterBranch{Router: "decide", Outcome: "yes"},
			flow.RouterBranch{Router: "decide", Outcome: "no"},
		}},
		{Name: "decide", Router: true, Outcomes: []string{"yes", "no"},
			Triggers: []flow.Trigger{listen("work")}},
	}}
	g := mustExtract(t, def)
	levels := AssignLevels(g)

	if len(levels) != 3 {
		t.Fatalf("levels = %v", levels)
	}
	if g.CyclicEdgeCount() == 0 {
		t.Error("loop back should mark at least one edge cyclic")
	}
	for _, e := range g.Edges() {
		if e.Label != "" && e.Kind == EdgeNormal {
			t.Errorf("branch edge %s->%s lost its conditional classification", e.From, e.To)
		}
	}
}

func TestAssignLevelsDeterministic(t *testing.T) {
	def := &flow.Definition{Steps: []flow.Step{
		{Name: "start"},
		{Name: "a", Triggers: []flow.Trigger{listen("start")}},
		{Name: "b", Triggers: []flow.Trigger{listen("start")}},
		{Name: "decide", Router: true, Outcomes: []string{"retry", "done"},
			Triggers: []flow.Trigger{listen("a", "b")}},
		{Name: "finish", Triggers: []flow.Trigger{flow.RouterBranch{Router: "decide", Outcome: "done"}}},
		{Name: "a2", Triggers: []flow.Trigger{flow.RouterBranch{Router: "decide", Outcome: "retry"}}},
	}}

	snapshot := func() []byte {
		g := mustExtract(t, def)
		levels := AssignLevels(g)
		pos := ComputePositions(g, levels)
		data, err := Export(g, levels, pos).Marshal()
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		return data
	}

	first := snapshot()
	for i := 0; i < 5; i++ {
		if next := snapshot(); !bytes.Equal(first, next) {
			t.Fatalf("run %d produced different output", i)
		}
	}
}

func TestLevelGroups(t *testing.T) {
	g := mustExtract(t, &flow.Definition{Steps: []flow.Step{
		{Name: "start"},
		{Name: "b", Triggers: []flow.Trigger{listen("start")}},
		{Name: "a", Triggers: []flow.Trigger{listen("start")}},
	}})
	levels := AssignLevels(g)

	groups, maxLevel := LevelGroups(g, levels)
	if maxLevel != 1 {
		t.Errorf("maxLevel = %d, want 1", maxLevel)
	}
	// Declaration order within the level, not alphabetical.
	if len(groups[1]) != 2 || groups[1][0] != "b" || groups[1][1] != "a" {
		t.Errorf("groups[1] = %v, want [b a]", groups[1])
	}
}
