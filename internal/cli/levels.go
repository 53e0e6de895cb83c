package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	flowerrors "github.com/matzehuels/flowplot/pkg/errors"
	"github.com/matzehuels/flowplot/pkg/flow"
	"github.com/matzehuels/flowplot/pkg/graph"
)

// levelsCommand prints the analyzed graph as JSON without rendering.
func (c *CLI) levelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels <flow.json>",
		Short: "Print the computed layout as JSON",
		Long: `Levels runs extraction and layout on a flow definition and prints the
resulting nodes with their level and position, plus the classified
edges. Useful for inspecting how a flow will be arranged without
producing an artifact.`,
		Example: `  flowplot levels examples/email_flow.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLevels(args[0])
		},
	}
	return cmd
}

func (c *CLI) runLevels(path string) error {
	def, err := flow.ReadFile(path)
	if err != nil {
		printError("read flow: %s", flowerrors.UserMessage(err))
		return err
	}

	g, err := graph.FromFlow(def)
	if err != nil {
		printError("extract flow: %s", flowerrors.UserMessage(err))
		return err
	}

	levels := graph.AssignLevels(g)
	pos := graph.ComputePositions(g, levels)

	data, err := graph.Export(g, levels, pos).Marshal()
	if err != nil {
		printError("encode snapshot: %v", err)
		return err
	}
	fmt.Println(string(data))
	return nil
}
