package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studylog/internal/stats"
	"github.com/balkashynov/studylog/internal/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study totals and charts",
	Long: `Show today's and this week's study time, the number of sessions,
a per-subject breakdown and a daily chart. Weeks start on Sunday.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		view := application.View()

		if cmd.Flags().Changed("days") {
			days, _ := cmd.Flags().GetInt("days")
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			view.Summary.Daily = stats.DailySeries(application.Sessions(), view.Today, days)
		}

		width, _ := cmd.Flags().GetInt("width")
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderDashboard(view, width))
		return nil
	}),
}

func init() {
	statsCmd.Flags().Int("days", 0, "Days in the daily chart (default from config stats.days)")
	statsCmd.Flags().Int("width", 90, "Output width in columns")
}
