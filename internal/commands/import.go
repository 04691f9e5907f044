package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/balkashynov/studylog/internal/export"
	"github.com/balkashynov/studylog/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Replace all sessions with a JSON backup",
	Long: `Replace the whole collection with sessions from a file written by
'studylog export --format json'. The file is validated first; on any error
nothing is changed.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}

		sessions, err := export.FromJSON(data)
		if err != nil {
			return fmt.Errorf("failed to parse backup: %w", err)
		}

		if err := application.Import(sessions); err != nil {
			var verr *store.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("backup rejected: %s: %s", verr.Field, verr.Reason)
			}
			return err
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "📥 Imported %d sessions from %s\n", len(sessions), args[0])
		return nil
	}),
}
