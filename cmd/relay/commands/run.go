package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <workflow>",
		Short: "Run a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _ := cmd.Flags().GetString("config")
			branch, _ := cmd.Flags().GetString("branch")
			parallelism, _ := cmd.Flags().GetInt("parallelism")

			run, err := c.app.Run(cmd.Context(), config, args[0], branch, parallelism)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "workflow %s finished: %s (%d jobs)\n",
				run.Workflow, run.Status, len(run.Jobs))
			return nil
		},
	}
	cmd.Flags().StringP("branch", "b", "main", "Branch to evaluate workflow filters against")
	cmd.Flags().IntP("parallelism", "p", runtime.NumCPU(), "Maximum number of jobs running concurrently")
	return cmd
}
