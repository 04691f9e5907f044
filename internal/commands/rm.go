package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/balkashynov/studylog/internal/duration"
	"github.com/balkashynov/studylog/internal/store"
)

var removeCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a study session",
	Long:    "Delete a study session by id. Any unambiguous id prefix is accepted.",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		session, err := application.Resolve(args[0])
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no session with id %q", args[0])
			}
			return err
		}

		application.Delete(session.ID)

		minutes := duration.ToMinutes(session.Duration, session.TimeUnit)
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "🗑  Deleted %s session from %s (%s)\n",
			session.Subject, session.Date, duration.FormatMinutes(minutes))
		return nil
	}),
}
