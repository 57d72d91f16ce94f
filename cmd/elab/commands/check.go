package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/elab/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [models...]",
		Short: "Elaborate and validate models once",
		Long: "Elaborate and validate the given models, or every document of the workspace,\n" +
			"and exit with a non-zero status when any of them is not valid.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, _ := cmd.Flags().GetBool("stats")
			return c.app.Check(cmd.Context(), app.CheckOptions{
				Dir:   dirFlag(cmd),
				Refs:  args,
				Stats: stats,
			})
		},
	}
	cmd.Flags().Bool("stats", false, "Log elaboration counts after the check")
	return cmd
}
