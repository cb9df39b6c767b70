package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/waypoint/internal/app"
)

func (c *CLI) newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [zone]",
		Short: "Browse zones interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noPrefetch, _ := cmd.Flags().GetBool("no-prefetch")
			start, _ := cmd.Flags().GetString("start")
			if len(args) == 1 {
				start = args[0]
			}

			return c.app.Explore(cmd.Context(), app.ExploreOptions{
				NoPrefetch: noPrefetch,
				Start:      start,
			})
		},
	}
	cmd.Flags().Bool("no-prefetch", false, "Do not warm the neighbors of visited zones")
	cmd.Flags().StringP("start", "s", "", "Zone to visit before the explorer opens")
	return cmd
}
