// Package cli implements the flowplot command-line interface.
//
// This package provides commands for rendering flow definitions as
// interactive diagrams, inspecting their level assignment, and previewing
// rendered artifacts locally. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - plot: Render a flow definition to an interactive HTML diagram
//   - levels: Print the computed level assignment as JSON
//   - serve: Preview a rendered artifact in a local browser
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowplot/pkg/buildinfo"
)

// appName is the application name used for display.
const appName = "flowplot"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Flowplot renders flow definitions as interactive diagrams",
		Long:         `Flowplot is a CLI tool for visualizing flows - directed graphs of execution steps with listeners, routers, and loops - as hierarchical, self-contained interactive diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.plotCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.serveCommand())

	return root
}
