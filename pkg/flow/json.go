package flow

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Flow Serialization API
// =============================================================================

// MarshalDefinition converts a flow definition to pretty-printed JSON bytes.
func MarshalDefinition(d *Definition) ([]byte, error) {
	return json.MarshalIndent(toJSON(d), "", "  ")
}

// UnmarshalDefinition decodes JSON bytes into a flow definition and
// validates its input contract.
func UnmarshalDefinition(data []byte) (*Definition, error) {
	var dj definitionJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return nil, fmt.Errorf("decode flow: %w", err)
	}
	d := fromJSON(dj)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// WriteFile writes a flow definition to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(d *Definition, path string) error {
	data, err := MarshalDefinition(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a JSON file and returns the decoded, validated definition.
func ReadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDefinition(data)
}

// Read decodes a JSON flow definition from an io.Reader.
func Read(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read flow: %w", err)
	}
	return UnmarshalDefinition(data)
}

// =============================================================================
// Wire Format
// =============================================================================

// The wire format flattens the trigger union into two lists per step.
// Listener order relative to branch order is not significant for layout,
// so the split is lossless for this engine's purposes.

type definitionJSON struct {
	Name  string     `json:"name,omitempty"`
	Steps []stepJSON `json:"steps"`
}

type stepJSON struct {
	Name     string       `json:"name"`
	Router   bool         `json:"router,omitempty"`
	Crew     bool         `json:"crew,omitempty"`
	Outcomes []string     `json:"outcomes,omitempty"`
	Listen   []listenJSON `json:"listen,omitempty"`
	Branches []branchJSON `json:"branches,omitempty"`
}

type listenJSON struct {
	Condition Condition `json:"condition,omitempty"`
	Steps     []string  `json:"steps"`
}

type branchJSON struct {
	Router  string `json:"router"`
	Outcome string `json:"outcome"`
}

func toJSON(d *Definition) definitionJSON {
	out := definitionJSON{
		Name:  d.Name,
		Steps: make([]stepJSON, len(d.Steps)),
	}
	for i, s := range d.Steps {
		sj := stepJSON{
			Name:     s.Name,
			Router:   s.Router,
			Crew:     s.Crew,
			Outcomes: s.Outcomes,
		}
		for _, t := range s.Triggers {
			switch t := t.(type) {
			case Listener:
				sj.Listen = append(sj.Listen, listenJSON{Condition: t.Condition, Steps: t.Steps})
			case RouterBranch:
				sj.Branches = append(sj.Branches, branchJSON{Router: t.Router, Outcome: t.Outcome})
			}
		}
		out.Steps[i] = sj
	}
	return out
}

func fromJSON(dj definitionJSON) *Definition {
	d := &Definition{
		Name:  dj.Name,
		Steps: make([]Step, len(dj.Steps)),
	}
	for i, sj := range dj.Steps {
		s := Step{
			Name:     sj.Name,
			Router:   sj.Router,
			Crew:     sj.Crew,
			Outcomes: sj.Outcomes,
		}
		for _, l := range sj.Listen {
			s.Triggers = append(s.Triggers, Listener{Condition: l.Condition, Steps: l.Steps})
		}
		for _, b := range sj.Branches {
			s.Triggers = append(s.Triggers, RouterBranch{Router: b.Router, Outcome: b.Outcome})
		}
		d.Steps[i] = s
	}
	return d
}
