package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List every subject you have studied",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		subjects := application.View().Subjects
		if len(subjects) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No subjects yet.")
			return nil
		}
		for _, subject := range subjects {
			fmt.Fprintln(cmd.OutOrStdout(), subject)
		}
		return nil
	}),
}
