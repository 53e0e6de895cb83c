// Package flow defines the declarative flow model consumed by the plot
// pipeline: named steps, their trigger declarations, and router outcomes.
//
// A flow is a directed graph of execution steps. Each step declares how it
// is activated by upstream steps using typed triggers:
//
//   - [Listener] fires when the referenced upstream steps complete. The
//     condition controls whether all upstreams are required (and) or any
//     single one suffices (or).
//   - [RouterBranch] fires when the referenced upstream router selects the
//     named outcome.
//
// Steps with no triggers are entry points of the flow. The package performs
// only the validation needed for layout - existence and shape of
// declarations, not execution semantics.
package flow

import "errors"

var (
	// ErrEmptyStepName is returned by [Definition.Validate] when a step
	// has an empty name. All steps must have non-empty identifiers.
	ErrEmptyStepName = errors.New("step name must not be empty")

	// ErrDuplicateStep is returned by [Definition.Validate] when two steps
	// share the same name. Step names must be unique within a flow.
	ErrDuplicateStep = errors.New("duplicate step name")

	// ErrUnknownUpstream is returned by [Definition.Validate] when a trigger
	// references a step name that is not declared in the flow.
	ErrUnknownUpstream = errors.New("trigger references unknown upstream step")

	// ErrRouterNoOutcomes is returned by [Definition.Validate] when a step
	// is marked as a router but declares no outcome names.
	ErrRouterNoOutcomes = errors.New("router declares no outcomes")
)

// Condition controls how a Listener combines multiple upstream steps.
type Condition string

const (
	// ConditionAnd requires all referenced upstream steps to complete.
	ConditionAnd Condition = "and"
	// ConditionOr fires as soon as any referenced upstream step completes.
	ConditionOr Condition = "or"
)

// Trigger declares how a step is activated by upstream steps.
// The two implementations are [Listener] and [RouterBranch].
type Trigger interface {
	// Upstreams returns the names of the upstream steps this trigger
	// references, in declaration order.
	Upstreams() []string
}

// Listener is an unconditional trigger: the step runs when the referenced
// upstream steps complete. A zero Condition is treated as ConditionOr for
// single-upstream listeners and ConditionAnd otherwise.
type Listener struct {
	Condition Condition
	Steps     []string
}

// Upstreams returns the listened-to step names.
func (l Listener) Upstreams() []string { return l.Steps }

// RouterBranch is a conditional trigger: the step runs when the upstream
// router selects the named outcome.
type RouterBranch struct {
	Router  string
	Outcome string
}

// Upstreams returns the router step name.
func (b RouterBranch) Upstreams() []string { return []string{b.Router} }

// Step is one named unit of a flow.
//
// Router marks the step as a routing decision point; Outcomes lists its
// possible outcome names in declaration order and must be non-empty for
// routers. Crew marks the step as delegating execution to a composed
// sub-system.
type Step struct {
	Name     string
	Router   bool
	Crew     bool
	Outcomes []string
	Triggers []Trigger
}

// IsStart reports whether the step has no trigger declarations.
func (s Step) IsStart() bool { return len(s.Triggers) == 0 }

// Definition is a complete declarative flow: an ordered collection of steps.
// Step order is significant for layout determinism - extraction and level
// assignment process steps in declaration order.
type Definition struct {
	Name  string
	Steps []Step
}

// Step returns the step with the given name and true, or a zero Step and
// false if no step with that name is declared.
func (d *Definition) Step(name string) (Step, bool) {
	for _, s := range d.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// Validate checks the input contract required for layout:
//
//  1. Every step has a non-empty, unique name.
//  2. Every trigger references a declared step.
//  3. Every router declares at least one outcome.
//
// It does not validate execution semantics (outcome name matching,
// reachability, listener conditions).
func (d *Definition) Validate() error {
	names := make(map[string]struct{}, len(d.Steps))
	for _, s := range d.Steps {
		if s.Name == "" {
			return ErrEmptyStepName
		}
		if _, dup := names[s.Name]; dup {
			return &StepError{Step: s.Name, Err: ErrDuplicateStep}
		}
		names[s.Name] = struct{}{}
		if s.Router && len(s.Outcomes) == 0 {
			return &StepError{Step: s.Name, Err: ErrRouterNoOutcomes}
		}
	}
	for _, s := range d.Steps {
		for _, t := range s.Triggers {
			for _, up := range t.Upstreams() {
				if _, ok := names[up]; !ok {
					return &StepError{Step: s.Name, Upstream: up, Err: ErrUnknownUpstream}
				}
			}
		}
	}
	return nil
}

// StepError wraps a validation error with the step (and optionally the
// upstream reference) that caused it.
type StepError struct {
	Step     string
	Upstream string
	Err      error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	if e.Upstream != "" {
		return "step " + e.Step + ": " + e.Err.Error() + ": " + e.Upstream
	}
	return "step " + e.Step + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel for errors.Is compatibility.
func (e *StepError) Unwrap() error { return e.Err }
