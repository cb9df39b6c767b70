package commands

import "github.com/spf13/cobra"

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the zone registry, adjacency and dangling references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Graph(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
