package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/waypoint/internal/app"
)

func (c *CLI) newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest [ids...]",
		Short: "Fetch quest contexts and print their state",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			c.app.SetJSON(jsonOut)

			return c.app.Quests(cmd.Context(), args, app.QuestOptions{JSON: jsonOut})
		},
	}
	cmd.Flags().Bool("json", false, "Print the quest states as JSON")
	return cmd
}
