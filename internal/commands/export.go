package commands

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all sessions as CSV or JSON",
	Long: `Export every session, newest first.

CSV columns: Subject,Duration,Time Unit,Date,Notes,Timestamp
By default text fields are written as-is inside double quotes. Use --strict
to double embedded quotes so spreadsheet tools parse notes safely.
JSON output can be restored with 'studylog import'.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		strict, _ := cmd.Flags().GetBool("strict")
		output, _ := cmd.Flags().GetString("output")
		toClipboard, _ := cmd.Flags().GetBool("clipboard")

		var data []byte
		switch format {
		case "csv":
			data = []byte(application.Export(strict))
		case "json":
			encoded, err := application.ExportJSON()
			if err != nil {
				return fmt.Errorf("failed to encode sessions: %w", err)
			}
			data = encoded
		default:
			return fmt.Errorf("unknown --format %q (use csv or json)", format)
		}

		count := len(application.Sessions())
		out := cmd.OutOrStdout()

		if toClipboard {
			if err := clipboard.WriteAll(string(data)); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			color.New(color.FgGreen).Fprintf(out, "📋 Copied %d sessions to the clipboard\n", count)
		}

		if output != "" {
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			color.New(color.FgGreen).Fprintf(out, "💾 Exported %d sessions to %s\n", count, output)
		}

		if output == "" && !toClipboard {
			fmt.Fprintln(out, string(data))
		}
		return nil
	}),
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().Bool("clipboard", false, "Copy the export to the clipboard")
	exportCmd.Flags().Bool("strict", false, "Escape embedded quotes in CSV fields")
	exportCmd.Flags().StringP("format", "f", "csv", "Output format: csv or json")
}
