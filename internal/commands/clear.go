package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every study session",
	Long: `Delete every study session. This cannot be undone, so --yes is required.
Consider 'studylog export --format json -o backup.json' first.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("refusing to delete all sessions without --yes")
		}

		count := len(application.Sessions())
		application.Clear()

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "Cleared %d sessions\n", count)
		if count > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Use 'studylog import <file>' to restore a backup.")
		}
		return nil
	}),
}

func init() {
	clearCmd.Flags().BoolP("yes", "y", false, "Confirm deleting all sessions")
}
