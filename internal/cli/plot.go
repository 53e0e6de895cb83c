package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	flowerrors "github.com/matzehuels/flowplot/pkg/errors"
	"github.com/matzehuels/flowplot/pkg/flow"
	"github.com/matzehuels/flowplot/pkg/plot"
)

// plotCommand renders a flow definition file to one or more artifacts.
func (c *CLI) plotCommand() *cobra.Command {
	var (
		output  string
		formats []string
		theme   string
		title   string
	)

	cmd := &cobra.Command{
		Use:   "plot <flow.json>",
		Short: "Render a flow definition as an interactive diagram",
		Long: `Plot reads a flow definition from a JSON file and renders it as a
hierarchical diagram. The default artifact is a self-contained HTML
document with pan, zoom, and hover interaction; dot, svg, and png
artifacts can be requested with --format.`,
		Example: `  flowplot plot examples/email_flow.json
  flowplot plot flow.json -o diagrams/email --format html --format png
  flowplot plot flow.json --theme dark.toml --title "Email Pipeline"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlot(cmd.Context(), args[0], plot.Options{
				OutputBase: output,
				Formats:    formats,
				Title:      title,
				ThemePath:  theme,
				Logger:     c.Logger,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path without suffix (default \"flow_plot\")")
	cmd.Flags().StringArrayVar(&formats, "format", nil, "artifact format, repeatable: html, dot, svg, png (default html)")
	cmd.Flags().StringVar(&theme, "theme", "", "TOML theme override file")
	cmd.Flags().StringVar(&title, "title", "", "document title (default flow name)")

	return cmd
}

func (c *CLI) runPlot(ctx context.Context, path string, opts plot.Options) error {
	def, err := flow.ReadFile(path)
	if err != nil {
		printError("read flow: %s", flowerrors.UserMessage(err))
		return err
	}

	sp := newSpinner(fmt.Sprintf("Rendering %s...", displayName(def, path)))
	res, err := plot.Render(ctx, def, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			sp.Cancelled()
			return err
		}
		sp.StopWithError("render failed: %s", flowerrors.UserMessage(err))
		return err
	}

	sp.StopWithSuccess("Plot saved as %s", res.Path)
	for _, format := range opts.Formats {
		if p, ok := res.Paths[format]; ok && p != res.Path {
			printFile(p)
		}
	}
	c.Logger.Debug("pipeline stats",
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"cyclic_edges", res.Stats.CyclicEdges,
		"levels", res.Stats.LevelCount,
		"extract", res.Stats.ExtractTime,
		"layout", res.Stats.LayoutTime,
		"render", res.Stats.RenderTime,
	)
	return nil
}

// displayName picks a human-readable name for progress output.
func displayName(def *flow.Definition, path string) string {
	if def.Name != "" {
		return def.Name
	}
	return strings.TrimSuffix(path, ".json")
}
