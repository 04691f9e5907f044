package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/balkashynov/studylog/internal/duration"
	"github.com/balkashynov/studylog/internal/parser"
	"github.com/balkashynov/studylog/internal/store"
	"github.com/balkashynov/studylog/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [session description]",
	Short: "Log a study session",
	Long: `Log a study session with optional metadata.

Modes:
  Interactive: studylog add -i (or just 'studylog add' with no arguments)
  Quick: studylog add -s calculus -d 45
  Smart parsing: studylog add "Chapter 3 review @calculus 45m date:yesterday"

Smart parsing syntax:
  @subject      - Subject (use _ for spaces: @linear_algebra)
  45m, 2h       - Duration in minutes or hours
  date:VALUE    - today, yesterday, 3d, 2 weeks ago, dd/mm/yyyy, yyyy-mm-dd
Everything else becomes the session notes.`,
	Args: cobra.ArbitraryArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		noUI, _ := cmd.Flags().GetBool("no-ui")

		// No description and no field flags: go interactive
		if len(args) == 0 && !hasFieldFlags(cmd) {
			interactive = true
		}
		if interactive && !noUI {
			return tui.RunAddSessionTUI(application, prefilledFromFlags(cmd, parser.ParsedEntry{}), cmd.OutOrStdout())
		}

		parsed := parser.ParseEntry(strings.Join(args, " "), application.Today())
		if err := applyFlags(cmd, &parsed); err != nil {
			return err
		}

		if problems := parsed.Problems(); len(problems) > 0 {
			if noUI {
				return fmt.Errorf("cannot log session: %s", strings.Join(problems, ", "))
			}
			// Fall back to the wizard with whatever was understood
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  Found issues with parsing: %s\n", strings.Join(problems, ", "))
			fmt.Fprintln(cmd.OutOrStdout(), "Opening interactive mode for confirmation...")
			return tui.RunAddSessionTUI(application, prefilledFromFlags(cmd, parsed), cmd.OutOrStdout())
		}

		return runDirectAdd(cmd, parsed)
	}),
}

// fieldFlags are the flags that describe the session itself
var fieldFlags = []string{"subject", "duration", "unit", "date", "note"}

func hasFieldFlags(cmd *cobra.Command) bool {
	for _, name := range fieldFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// applyFlags overrides parsed values with explicit flags (flags take precedence)
func applyFlags(cmd *cobra.Command, parsed *parser.ParsedEntry) error {
	if subject, _ := cmd.Flags().GetString("subject"); subject != "" {
		parsed.Subject = subject
	}
	if cmd.Flags().Changed("duration") {
		amount, _ := cmd.Flags().GetInt("duration")
		parsed.Duration = amount
		parsed.Errors = withoutDurationErrors(parsed.Errors)
		if amount <= 0 {
			return errors.New("--duration must be greater than zero")
		}
	}
	if unit, _ := cmd.Flags().GetString("unit"); unit != "" {
		parsedUnit, err := duration.ParseUnit(unit)
		if err != nil {
			return fmt.Errorf("invalid --unit: %w", err)
		}
		parsed.TimeUnit = parsedUnit
	}
	if date, _ := cmd.Flags().GetString("date"); date != "" {
		parsedDate, err := parser.ParseStudyDate(date, application.Today())
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		parsed.Date = parsedDate
	}
	if note, _ := cmd.Flags().GetString("note"); note != "" {
		parsed.Notes = note
	}
	return nil
}

// withoutDurationErrors drops duration complaints once --duration supplies one
func withoutDurationErrors(errs []string) []string {
	kept := errs[:0]
	for _, e := range errs {
		if !parser.IsDurationError(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// prefilledFromFlags builds wizard defaults from parsed text and flags
func prefilledFromFlags(cmd *cobra.Command, parsed parser.ParsedEntry) map[string]string {
	prefilled := make(map[string]string)

	if parsed.Subject != "" {
		prefilled["subject"] = parsed.Subject
	}
	if parsed.Duration > 0 {
		prefilled["duration"] = strconv.Itoa(parsed.Duration)
	}
	if parsed.TimeUnit != "" {
		prefilled["unit"] = string(parsed.TimeUnit)
	}
	if !parsed.Date.IsZero() {
		prefilled["date"] = parsed.Date.String()
	}
	if parsed.Notes != "" {
		prefilled["notes"] = parsed.Notes
	}

	// Explicit flags win, even when they did not parse
	if subject, _ := cmd.Flags().GetString("subject"); subject != "" {
		prefilled["subject"] = subject
	}
	if cmd.Flags().Changed("duration") {
		amount, _ := cmd.Flags().GetInt("duration")
		prefilled["duration"] = strconv.Itoa(amount)
	}
	if unit, _ := cmd.Flags().GetString("unit"); unit != "" {
		prefilled["unit"] = unit
	}
	if date, _ := cmd.Flags().GetString("date"); date != "" {
		prefilled["date"] = date
	}
	if note, _ := cmd.Flags().GetString("note"); note != "" {
		prefilled["notes"] = note
	}
	return prefilled
}

// runDirectAdd logs the session without the TUI
func runDirectAdd(cmd *cobra.Command, parsed parser.ParsedEntry) error {
	session, err := application.Submit(store.NewSession{
		Subject:  parsed.Subject,
		Duration: parsed.Duration,
		TimeUnit: parsed.TimeUnit,
		Date:     parsed.Date,
		Notes:    parsed.Notes,
	})
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			return errors.New(verr.Reason)
		}
		return err
	}

	out := cmd.OutOrStdout()
	minutes := duration.ToMinutes(session.Duration, session.TimeUnit)
	color.New(color.FgGreen).Fprintf(out, "✅ Logged %s of %s\n", duration.FormatMinutes(minutes), session.Subject)
	fmt.Fprintf(out, "  Date: %s\n", parser.FormatStudyDate(session.Date, application.Today()))
	if session.Notes != "" {
		fmt.Fprintf(out, "  Notes: %s\n", session.Notes)
	}
	fmt.Fprintf(out, "  ID: %s\n", session.ID)
	return nil
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().Bool("no-ui", false, "Never open the interactive form")
	addCmd.Flags().StringP("subject", "s", "", "Subject studied")
	addCmd.Flags().IntP("duration", "d", 0, "Time spent, in --unit")
	addCmd.Flags().StringP("unit", "u", "", "Time unit: minutes or hours (default minutes)")
	addCmd.Flags().String("date", "", "Study date: today, yesterday, 3d, dd/mm/yyyy, yyyy-mm-dd")
	addCmd.Flags().StringP("note", "n", "", "Additional notes")
}
