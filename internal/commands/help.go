package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for studylog",
	Long:  `Display detailed help for all studylog commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), customHelp)
	},
}

const customHelp = `
 ___| |_ _   _  __| |_   _| | ___   __ _
/ __| __| | | |/ _' | | | | |/ _ \ / _' |
\__ \ |_| |_| | (_| | |_| | | (_) | (_| |
|___/\__|\__,_|\__,_|\__, |_|\___/ \__, |
                     |___/         |___/

studylog - CLI study-time log

COMMANDS:

  add [text]              Log a study session with smart parsing
    -s, --subject         Subject studied
    -d, --duration        Time spent (whole number)
    -u, --unit            minutes|hours (default minutes)
    --date                today, yesterday, 3d, dd/mm/yyyy, yyyy-mm-dd
    -n, --note            Additional notes
    -i, --interactive     Open the step-by-step form
    --no-ui               Never open the form

    Smart syntax:
      @subject      Subject (use _ for spaces)
      45m, 2h       Duration
      date:VALUE    Study date
      anything else becomes notes

    Example:
      studylog add "Chapter 3 review @calculus 45m date:yesterday"

  ls                      Browse sessions with interactive UI
    -s, --subject         Filter by subject (substring, any case)
    --date                Filter by study date
    --no-ui               Simple text output
    --json                JSON output

    Quick actions:
      ↑/↓           Navigate sessions
      ←/→           Change page
      /             Filter by subject
      c             Clear filter
      d             Delete selected session
      s             Show stats
      esc/q         Quit

  rm <id>                 Delete a session (id prefix is enough)
  clear --yes             Delete every session

  stats                   Today, this week, per subject and daily chart
    --days                Days in the daily chart

  subjects                List distinct subjects

  export                  Export all sessions (CSV to stdout by default)
    -f, --format          csv|json
    -o, --output          Write to file
    --clipboard           Copy to clipboard
    --strict              Escape quotes inside CSV fields

  import <file.json>      Replace all sessions with a JSON backup

  version                 Show version information
  help                    Show this help

GLOBAL FLAGS:
  -c, --config            Config file (default ~/.studylog/config.yaml)

`
