package flow

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     *Definition
		wantErr error
	}{
		{
			name: "Valid",
			def: &Definition{Steps: []Step{
				{Name: "start"},
				{Name: "next", Triggers: []Trigger{Listener{Steps: []string{"start"}}}},
			}},
		},
		{
			name:    "EmptyName",
			def:     &Definition{Steps: []Step{{Name: ""}}},
			wantErr: ErrEmptyStepName,
		},
		{
			name: "DuplicateName",
			def: &Definition{Steps: []Step{
				{Name: "a"},
				{Name: "a"},
			}},
			wantErr: ErrDuplicateStep,
		},
		{
			name: "UnknownListenerUpstream",
			def: &Definition{Steps: []Step{
				{Name: "a", Triggers: []Trigger{Listener{Steps: []string{"missing"}}}},
			}},
			wantErr: ErrUnknownUpstream,
		},
		{
			name: "UnknownRouterUpstream",
			def: &Definition{Steps: []Step{
				{Name: "a", Triggers: []Trigger{RouterBranch{Router: "missing", Outcome: "yes"}}},
			}},
			wantErr: ErrUnknownUpstream,
		},
		{
			name: "RouterWithoutOutcomes",
			def: &Definition{Steps: []Step{
				{Name: "decide", Router: true},
			}},
			wantErr: ErrRouterNoOutcomes,
		},
		{
			name: "RouterWithOutcomes",
			def: &Definition{Steps: []Step{
				{Name: "decide", Router: true, Outcomes: []string{"yes", "no"}},
			}},
		},
		{
			name: "ForwardReference",
			def: &Definition{Steps: []Step{
				{Name: "a", Triggers: []Trigger{Listener{Steps: []string{"b"}}}},
				{Name: "b"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStepErrorMessage(t *testing.T) {
	err := &StepError{Step: "next", Upstream: "missing", Err: ErrUnknownUpstream}
	want := "step next: trigger references unknown upstream step: missing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestStepLookup(t *testing.T) {
	def := &Definition{Steps: []Step{{Name: "a"}, {Name: "b", Crew: true}}}

	s, ok := def.Step("b")
	if !ok || !s.Crew {
		t.Errorf("Step(b) = %+v, %v", s, ok)
	}
	if _, ok := def.Step("missing"); ok {
		t.Error("Step(missing) found, want not found")
	}
}

func TestIsStart(t *testing.T) {
	if !(Step{Name: "a"}).IsStart() {
		t.Error("step with no triggers should be a start")
	}
	s := Step{Name: "b", Triggers: []Trigger{Listener{Steps: []string{"a"}}}}
	if s.IsStart() {
		t.Error("triggered step should not be a start")
	}
}
