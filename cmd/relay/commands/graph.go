package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <workflow>",
		Short: "Render the workflow job graph in Graphviz DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close() //nolint:errcheck // best effort close in defer
				w = f
			}

			return c.app.Graph(config, args[0], w)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the DOT graph to a file instead of stdout")
	return cmd
}
