package commands

import "github.com/spf13/cobra"

func (c *CLI) newTheoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theories",
		Short: "List the available theories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Theories(cmd.Context(), dirFlag(cmd))
		},
	}
}
