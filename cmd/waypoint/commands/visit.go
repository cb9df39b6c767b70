package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/waypoint/internal/app"
)

func (c *CLI) newVisitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visit [zones...]",
		Short: "Travel through zones in order and print the cache state",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			noPrefetch, _ := cmd.Flags().GetBool("no-prefetch")
			wait, _ := cmd.Flags().GetBool("wait")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			headless, _ := cmd.Flags().GetBool("headless")
			jsonOut, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")
			showMetrics, _ := cmd.Flags().GetBool("metrics")

			// --headless is shorthand for --output-mode=headless
			if headless {
				outputMode = "headless"
			}
			c.app.SetJSON(jsonOut)

			return c.app.Visit(cmd.Context(), args, app.VisitOptions{
				NoPrefetch: noPrefetch,
				Wait:       wait,
				OutputMode: outputMode,
				JSON:       jsonOut,
				Verbose:    verbose,
				Metrics:    showMetrics,
			})
		},
	}
	cmd.Flags().Bool("no-prefetch", false, "Do not warm the neighbors of visited zones")
	cmd.Flags().BoolP("wait", "w", false, "Wait for neighbor prefetches before printing the summary")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, linear, or headless")
	cmd.Flags().Bool("headless", false, "Run without a render host (shorthand for --output-mode=headless)")
	cmd.Flags().Bool("json", false, "Print the summary as JSON")
	cmd.Flags().BoolP("verbose", "v", false, "Print every bundle load as it starts and ends")
	cmd.Flags().Bool("metrics", false, "Print loader metrics after the summary")
	return cmd
}
