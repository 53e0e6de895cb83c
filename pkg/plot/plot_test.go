package plot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowplot/pkg/errors"
	"github.com/matzehuels/flowplot/pkg/flow"
)

func diamondFlow() *flow.Definition {
	return &flow.Definition{
		Name: "diamond",
		Steps: []flow.Step{
			{Name: "start"},
			{Name: "stepA", Triggers: []flow.Trigger{flow.Listener{Steps: []string{"start"}}}},
			{Name: "stepB", Triggers: []flow.Trigger{
				flow.Listener{Condition: flow.ConditionAnd, Steps: []string{"start", "stepA"}},
			}},
		},
	}
}

func TestRenderEndToEnd(t *testing.T) {
	base := filepath.Join(t.TempDir(), "diagram")

	res, err := Render(context.Background(), diamondFlow(), Options{OutputBase: base})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if res.Path != base+".html" {
		t.Errorf("path = %s, want %s.html", res.Path, base)
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	doc := string(data)

	for _, label := range []string{">start<", ">stepA<", ">stepB<"} {
		if !strings.Contains(doc, label) {
			t.Errorf("artifact missing node label %q", label)
		}
	}
	if got := strings.Count(doc, `<line class="edge"`); got != 3 {
		t.Errorf("edge connectors = %d, want 3", got)
	}

	wantLevels := map[string]int{"start": 0, "stepA": 1, "stepB": 2}
	for _, n := range res.Snapshot.Nodes {
		if want := wantLevels[n.ID]; n.Level != want {
			t.Errorf("level(%s) = %d, want %d", n.ID, n.Level, want)
		}
	}

	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 3 || res.Stats.CyclicEdges != 0 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestRenderRouterLoopTerminates(t *testing.T) {
	def := &flow.Definition{
		Name: "loop",
		Steps: []flow.Step{
			{Name: "start"},
			{Name: "work", Triggers: []flow.Trigger{
				flow.Listener{Steps: []string{"start"}},
				flow.RouterBranch{Router: "decide", Outcome: "retry"},
			}},
			{Name: "decide", Router: true, Outcomes: []string{"retry", "done"},
				Triggers: []flow.Trigger{flow.Listener{Steps: []string{"work"}}}},
			{Name: "finish", Triggers: []flow.Trigger{flow.RouterBranch{Router: "decide", Outcome: "done"}}},
		},
	}

	res, err := Render(context.Background(), def, Options{
		OutputBase: filepath.Join(t.TempDir(), "loop"),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Stats.CyclicEdges == 0 {
		t.Error("loop back should be classified cyclic")
	}
}

func TestRenderMultipleFormats(t *testing.T) {
	base := filepath.Join(t.TempDir(), "multi")

	res, err := Render(context.Background(), diamondFlow(), Options{
		OutputBase: base,
		Formats:    []string{FormatHTML, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(res.Paths) != 2 {
		t.Fatalf("paths = %v", res.Paths)
	}
	dot, err := os.ReadFile(res.Paths[FormatDOT])
	if err != nil {
		t.Fatalf("dot artifact: %v", err)
	}
	if !strings.Contains(string(dot), "digraph flow {") {
		t.Error("dot artifact malformed")
	}
	// HTML stays the primary path regardless of format order.
	if res.Path != base+".html" {
		t.Errorf("primary path = %s", res.Path)
	}
}

func TestRenderInvalidFlow(t *testing.T) {
	def := &flow.Definition{Steps: []flow.Step{
		{Name: "a", Triggers: []flow.Trigger{flow.Listener{Steps: []string{"missing"}}}},
	}}
	base := filepath.Join(t.TempDir(), "bad")

	_, err := Render(context.Background(), def, Options{OutputBase: base})
	if !errors.Is(err, errors.ErrCodeInvalidFlow) {
		t.Fatalf("err = %v, want code %s", err, errors.ErrCodeInvalidFlow)
	}
	if _, statErr := os.Stat(base + ".html"); !os.IsNotExist(statErr) {
		t.Error("malformed flow must not produce an artifact")
	}
}

func TestRenderUnwritablePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "no", "such", "dir", "out")

	_, err := Render(context.Background(), diamondFlow(), Options{OutputBase: base})
	if !errors.Is(err, errors.ErrCodeWriteFailed) {
		t.Fatalf("err = %v, want code %s", err, errors.ErrCodeWriteFailed)
	}
	if _, statErr := os.Stat(base + ".html"); !os.IsNotExist(statErr) {
		t.Error("failed render must not leave a partial file")
	}
}

func TestRenderNoWorkDirLeftBehind(t *testing.T) {
	dir := t.TempDir()
	if _, err := Render(context.Background(), diamondFlow(), Options{
		OutputBase: filepath.Join(dir, "out"),
	}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".flowplot-") {
			t.Errorf("working directory %s not cleaned up", e.Name())
		}
	}
}

func TestRenderInvalidTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte("[nodes.bogus]\nfill = \"#000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Render(context.Background(), diamondFlow(), Options{
		OutputBase: filepath.Join(t.TempDir(), "out"),
		ThemePath:  path,
	})
	if !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Fatalf("err = %v, want code %s", err, errors.ErrCodeInvalidTheme)
	}
}

func TestFlowConvenience(t *testing.T) {
	t.Chdir(t.TempDir())

	path, err := Flow(diamondFlow(), "")
	if err != nil {
		t.Fatalf("Flow: %v", err)
	}
	if path != DefaultBaseName+".html" {
		t.Errorf("path = %s, want %s.html", path, DefaultBaseName)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatHTML, FormatDOT, FormatSVG, FormatPNG} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%s): %v", f, err)
		}
	}
	if err := ValidateFormat("pdf"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(pdf) = %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.OutputBase != DefaultBaseName {
		t.Errorf("output base = %s", opts.OutputBase)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatHTML {
		t.Errorf("formats = %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("logger should default to a discard logger")
	}

	// Idempotent.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults: %v", err)
	}
}
