// Package plot orchestrates the flow diagram pipeline.
//
// One call to [Render] runs the complete extract → level → position →
// style → render pass and writes the resulting artifact(s). The pipeline
// is single-threaded and synchronous; every derived structure is local to
// the call and discarded when it returns. There is no cross-call caching.
//
// The artifact file is written in full only after the in-memory layout
// succeeds: output is produced in a transient working directory and
// renamed into place, so no partial file remains on failure. The working
// directory is removed on every exit path; removal failures are logged,
// never propagated.
package plot

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/flowplot/pkg/errors"
	"github.com/matzehuels/flowplot/pkg/flow"
	"github.com/matzehuels/flowplot/pkg/graph"
	"github.com/matzehuels/flowplot/pkg/observability"
	"github.com/matzehuels/flowplot/pkg/render/html"
	"github.com/matzehuels/flowplot/pkg/render/nodelink"
	"github.com/matzehuels/flowplot/pkg/render/styles"
)

// DefaultBaseName is the output base name used when none is given.
// The primary artifact becomes "flow_plot.html".
const DefaultBaseName = "flow_plot"

// Output formats.
const (
	FormatHTML = "html"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: html, dot, svg, png)", format)
	}
	return nil
}

// Options contains all configuration for one render call.
type Options struct {
	// OutputBase is the artifact path without its format suffix.
	// Defaults to DefaultBaseName in the current directory.
	OutputBase string

	// Formats lists the artifacts to produce. Defaults to ["html"].
	Formats []string

	// Title is the document title for the HTML artifact.
	// Defaults to the flow's name, or "Flow Plot" if unnamed.
	Title string

	// ThemePath optionally points to a TOML theme override file.
	ThemePath string

	// Theme overrides ThemePath when set.
	Theme *styles.Theme

	// Logger receives progress and cleanup diagnostics.
	// Defaults to a discard logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.OutputBase == "" {
		o.OutputBase = DefaultBaseName
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// theme resolves the effective theme: explicit value, then TOML file,
// then the built-in default.
func (o *Options) theme() (styles.Theme, error) {
	if o.Theme != nil {
		return *o.Theme, nil
	}
	if o.ThemePath != "" {
		t, err := styles.Load(o.ThemePath)
		if err != nil {
			return styles.Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "load theme %s", o.ThemePath)
		}
		return t, nil
	}
	return styles.Default(), nil
}

// Result contains the outputs of one render call.
type Result struct {
	// Path is the primary artifact path (the HTML document when
	// requested, otherwise the first produced format).
	Path string

	// Paths maps each produced format to its artifact path.
	Paths map[string]string

	// Snapshot is the analyzed graph with levels and positions.
	Snapshot graph.Snapshot

	// Stats contains counts and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	CyclicEdges int
	LevelCount  int
	ExtractTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// Flow renders a flow definition with default options to filename
// (base name without suffix) and returns the artifact path.
// Pass an empty filename for the default "flow_plot".
func Flow(def *flow.Definition, filename string) (string, error) {
	res, err := Render(context.Background(), def, Options{OutputBase: filename})
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Render runs the complete pipeline for one flow definition.
//
// Extraction and layout fail fast: an input contract violation (unknown
// upstream reference, router without outcomes) aborts the call before any
// file is touched. Artifact write failures are surfaced with no partial
// file left behind. Working-directory cleanup failures are logged and
// never returned.
func Render(ctx context.Context, def *flow.Definition, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	theme, err := opts.theme()
	if err != nil {
		return nil, err
	}

	// Stage 1: extract
	extractStart := time.Now()
	g, err := graph.FromFlow(def)
	extractTime := time.Since(extractStart)
	observability.Pipeline().OnExtractComplete(ctx, nodeCount(g), edgeCount(g), extractTime, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFlow, err, "extract flow graph")
	}
	logger.Debug("extracted flow graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	// Stage 2: layout
	layoutStart := time.Now()
	levels := graph.AssignLevels(g)
	pos := graph.ComputePositions(g, levels)
	layoutTime := time.Since(layoutStart)
	_, maxLevel := graph.LevelGroups(g, levels)
	observability.Pipeline().OnLayoutComplete(ctx, maxLevel+1, g.CyclicEdgeCount(), layoutTime, nil)
	logger.Debug("computed layout", "levels", maxLevel+1, "cyclic_edges", g.CyclicEdgeCount())

	result := &Result{
		Paths:    make(map[string]string, len(opts.Formats)),
		Snapshot: graph.Export(g, levels, pos),
		Stats: Stats{
			NodeCount:   g.NodeCount(),
			EdgeCount:   g.EdgeCount(),
			CyclicEdges: g.CyclicEdgeCount(),
			LevelCount:  maxLevel + 1,
			ExtractTime: extractTime,
			LayoutTime:  layoutTime,
		},
	}

	// Stage 3: render into a transient working directory, then rename
	// each finished artifact into place.
	renderStart := time.Now()
	if err := renderArtifacts(ctx, g, levels, pos, theme, def, opts, result); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info(fmt.Sprintf("Plot saved as %s", result.Path))
	return result, nil
}

func renderArtifacts(ctx context.Context, g *graph.Graph, levels map[string]int, pos map[string]graph.Point,
	theme styles.Theme, def *flow.Definition, opts Options, result *Result) error {

	outDir := filepath.Dir(opts.OutputBase)

	// The working directory lives next to the output so the final rename
	// stays on one filesystem.
	workDir, err := os.MkdirTemp(outDir, ".flowplot-")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create working directory in %s", outDir)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			opts.Logger.Warn("cleanup failed", "dir", workDir, "error", rmErr)
		}
	}()

	title := opts.Title
	if title == "" {
		title = def.Name
	}
	if title == "" {
		title = "Flow Plot"
	}

	var dot string // built lazily, shared by dot/svg/png
	for _, format := range opts.Formats {
		renderStart := time.Now()
		var data []byte
		var renderErr error

		switch format {
		case FormatHTML:
			data = html.Render(g, levels, pos, theme, html.Options{
				Title:    title,
				CanvasID: "flow-" + uuid.NewString(),
			})
		case FormatDOT:
			data = []byte(dotFor(g, theme, &dot))
		case FormatSVG:
			data, renderErr = nodelink.RenderSVG(ctx, dotFor(g, theme, &dot))
		case FormatPNG:
			data, renderErr = nodelink.RenderPNG(ctx, dotFor(g, theme, &dot))
		}
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(renderStart), renderErr)
		if renderErr != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, renderErr, "render %s", format)
		}

		target := opts.OutputBase + "." + format
		if err := commit(workDir, target, data); err != nil {
			return err
		}
		result.Paths[format] = target
	}

	if p, ok := result.Paths[FormatHTML]; ok {
		result.Path = p
	} else {
		result.Path = result.Paths[opts.Formats[0]]
	}
	return nil
}

// commit writes data to a working file and renames it onto target, so the
// target either keeps its previous content or receives the complete new one.
func commit(workDir, target string, data []byte) error {
	work := filepath.Join(workDir, filepath.Base(target))
	if err := os.WriteFile(work, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", work)
	}
	if err := os.Rename(work, target); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", target)
	}
	return nil
}

// dotFor builds the DOT form once and reuses it across formats.
func dotFor(g *graph.Graph, theme styles.Theme, cached *string) string {
	if *cached == "" {
		*cached = nodelink.ToDOT(g, theme)
	}
	return *cached
}

func nodeCount(g *graph.Graph) int {
	if g == nil {
		return 0
	}
	return g.NodeCount()
}

func edgeCount(g *graph.Graph) int {
	if g == nil {
		return 0
	}
	return g.EdgeCount()
}
