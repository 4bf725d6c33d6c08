package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <workflow>",
		Short: "Show the execution plan of a workflow without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _ := cmd.Flags().GetString("config")
			branch, _ := cmd.Flags().GetString("branch")

			plan, err := c.app.Plan(config, args[0], branch)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range plan {
				line := entry.Name
				if len(entry.Requires) > 0 {
					line += fmt.Sprintf(" (requires %s)", strings.Join(entry.Requires, ", "))
				}
				if entry.Axes > 1 {
					line += fmt.Sprintf(" [%d axes]", entry.Axes)
				}
				if entry.Gated {
					line += fmt.Sprintf(" - skipped on branch %s", branch)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringP("branch", "b", "main", "Branch to evaluate workflow filters against")
	return cmd
}
