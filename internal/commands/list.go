package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studylog/internal/duration"
	"github.com/balkashynov/studylog/internal/filter"
	"github.com/balkashynov/studylog/internal/parser"
	"github.com/balkashynov/studylog/internal/stats"
	"github.com/balkashynov/studylog/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List study sessions",
	Long:    "List study sessions, newest first, optionally filtered by subject and date",
	Args:    cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		criteria, err := criteriaFromFlags(cmd)
		if err != nil {
			return err
		}
		application.SetFilter(criteria)

		noUI, _ := cmd.Flags().GetBool("no-ui")
		asJSON, _ := cmd.Flags().GetBool("json")

		switch {
		case asJSON:
			return printJSON(cmd)
		case noUI:
			printTable(cmd)
			return nil
		default:
			return tui.RunListTUI(application)
		}
	}),
}

// criteriaFromFlags builds filter criteria from --subject and --date
func criteriaFromFlags(cmd *cobra.Command) (filter.Criteria, error) {
	var criteria filter.Criteria
	criteria.Subject, _ = cmd.Flags().GetString("subject")

	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		date, err := parser.ParseStudyDate(raw, application.Today())
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid --date: %w", err)
		}
		criteria.Date = &date
	}
	return criteria, nil
}

func printJSON(cmd *cobra.Command) error {
	sessions := application.View().Filtered
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func printTable(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	view := application.View()

	if len(view.Filtered) == 0 {
		if view.Criteria.IsZero() {
			fmt.Fprintln(out, "No sessions found. Use 'studylog add \"@subject 45m\"' to log your first session.")
		} else {
			fmt.Fprintln(out, "No sessions match the filter.")
		}
		return
	}

	fmt.Fprintf(out, "%-8s %-10s %-20s %-8s %s\n", "ID", "DATE", "SUBJECT", "TIME", "NOTES")
	fmt.Fprintln(out, strings.Repeat("-", 80))

	for _, session := range view.Filtered {
		id := session.ID
		if r := []rune(id); len(r) > 8 {
			id = string(r[:8])
		}
		subject := ellipsize(session.Subject, 18)
		notes := ellipsize(session.Notes, 30)

		minutes := duration.ToMinutes(session.Duration, session.TimeUnit)
		fmt.Fprintf(out, "%-8s %-10s %-20s %-8s %s\n",
			id,
			session.Date,
			subject,
			duration.FormatMinutes(minutes),
			notes)
	}

	fmt.Fprintln(out, strings.Repeat("-", 80))
	fmt.Fprintf(out, "%d sessions, %s total\n",
		len(view.Filtered), duration.FormatMinutes(stats.TotalMinutes(view.Filtered)))
}

// ellipsize cuts s to at most width runes, marking the cut with "..."
func ellipsize(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func init() {
	listCmd.Flags().StringP("subject", "s", "", "Filter by subject (case-insensitive substring)")
	listCmd.Flags().String("date", "", "Filter by study date: today, yesterday, dd/mm/yyyy, yyyy-mm-dd")
	listCmd.Flags().Bool("json", false, "JSON output")
	listCmd.Flags().Bool("no-ui", false, "Simple text output")
}
