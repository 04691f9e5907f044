package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/balkashynov/studylog/internal/export"
	"github.com/balkashynov/studylog/internal/models"
)

// writeConfig points the sqlite slot at a fresh temp database
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "storage:\n  type: sqlite\n  path: " + filepath.Join(dir, "studylog.db") + "\nlogging:\n  level: error\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// resetFlags restores defaults since cobra keeps flag values between runs
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func run(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", config}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, config string, args ...string) string {
	t.Helper()
	out, err := run(t, config, args...)
	if err != nil {
		t.Fatalf("studylog %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func listJSON(t *testing.T, config string, args ...string) []models.StudySession {
	t.Helper()
	out := mustRun(t, config, append([]string{"ls", "--json"}, args...)...)
	var sessions []models.StudySession
	if err := json.Unmarshal([]byte(out), &sessions); err != nil {
		t.Fatalf("decode ls --json: %v\n%s", err, out)
	}
	return sessions
}

func TestAddSmartSyntax(t *testing.T) {
	config := writeConfig(t)

	out := mustRun(t, config, "add", "--no-ui", "Chapter 3 review @calculus 45m date:yesterday")
	if !strings.Contains(out, "Logged 45 min of calculus") {
		t.Errorf("unexpected output:\n%s", out)
	}

	sessions := listJSON(t, config)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.Subject != "calculus" || got.Duration != 45 || got.TimeUnit != models.UnitMinutes {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.Notes != "Chapter 3 review" {
		t.Errorf("notes = %q", got.Notes)
	}
}

func TestAddFlags(t *testing.T) {
	config := writeConfig(t)

	mustRun(t, config, "add", "-s", "Physics", "-d", "2", "-u", "hours", "--date", "2024-03-01", "-n", "optics")

	sessions := listJSON(t, config)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.Subject != "Physics" || got.Duration != 2 || got.TimeUnit != models.UnitHours {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.Date != models.NewDate(2024, 3, 1) || got.Notes != "optics" {
		t.Errorf("unexpected date/notes: %s %q", got.Date, got.Notes)
	}
}

func TestAddRejectsIncompleteInput(t *testing.T) {
	config := writeConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing duration", []string{"add", "--no-ui", "@math"}},
		{"missing subject", []string{"add", "--no-ui", "30m reading"}},
		{"zero duration flag", []string{"add", "--no-ui", "-s", "math", "-d", "0"}},
		{"bad unit", []string{"add", "--no-ui", "-s", "math", "-d", "5", "-u", "days"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, config, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if sessions := listJSON(t, config); len(sessions) != 0 {
		t.Errorf("rejected input must not be stored, got %d sessions", len(sessions))
	}

	_, err := run(t, config, "add", "--no-ui", "@math date:garbage")
	if err == nil || !strings.Contains(err.Error(), "Missing duration") || !strings.Contains(err.Error(), "Invalid date") {
		t.Errorf("expected both the date and the missing duration reported, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	config := writeConfig(t)
	mustRun(t, config, "add", "-s", "Math", "-d", "30", "--date", "2024-03-01")
	mustRun(t, config, "add", "-s", "Physics", "-d", "20", "--date", "2024-03-02")
	mustRun(t, config, "add", "-s", "Applied math", "-d", "10", "--date", "2024-03-02")

	if got := listJSON(t, config, "--subject", "MATH"); len(got) != 2 {
		t.Errorf("subject filter: got %d sessions, want 2", len(got))
	}
	if got := listJSON(t, config, "--date", "2024-03-02"); len(got) != 2 {
		t.Errorf("date filter: got %d sessions, want 2", len(got))
	}
	if got := listJSON(t, config, "--subject", "math", "--date", "2024-03-01"); len(got) != 1 || got[0].Subject != "Math" {
		t.Errorf("combined filter: got %+v", got)
	}

	out := mustRun(t, config, "ls", "--no-ui")
	for _, want := range []string{"SUBJECT", "Applied math", "Physics", "3 sessions, 1h total"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, config, "subjects")
	if out != "Applied math\nMath\nPhysics\n" {
		t.Errorf("subjects output = %q", out)
	}
}

func TestListTableTruncatesByRune(t *testing.T) {
	config := writeConfig(t)
	subject := strings.Repeat("é", 12)
	notes := strings.Repeat("日本", 20)
	mustRun(t, config, "add", "-s", subject, "-d", "30", "-n", notes)

	out := mustRun(t, config, "ls", "--no-ui")
	if !utf8.ValidString(out) {
		t.Fatalf("table output is not valid UTF-8:\n%q", out)
	}
	if !strings.Contains(out, subject) {
		t.Errorf("short subject should be printed whole:\n%s", out)
	}
	if want := strings.Repeat("日本", 13) + "日..."; !strings.Contains(out, want) {
		t.Errorf("notes should be cut to 27 runes plus ellipsis:\n%s", out)
	}
}

func TestRemoveByPrefix(t *testing.T) {
	config := writeConfig(t)
	mustRun(t, config, "add", "-s", "Math", "-d", "30")
	mustRun(t, config, "add", "-s", "Physics", "-d", "20")

	sessions := listJSON(t, config)
	target := sessions[0]

	out := mustRun(t, config, "rm", target.ID[:8])
	if !strings.Contains(out, "Deleted "+target.Subject) {
		t.Errorf("unexpected output:\n%s", out)
	}

	remaining := listJSON(t, config)
	if len(remaining) != 1 || remaining[0].ID == target.ID {
		t.Errorf("expected only the other session to remain, got %+v", remaining)
	}

	if _, err := run(t, config, "rm", "does-not-exist"); err == nil {
		t.Error("removing an unknown id should fail")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	config := writeConfig(t)
	mustRun(t, config, "add", "-s", "Math", "-d", "30", "-n", `said "hi"`)
	mustRun(t, config, "add", "-s", "Physics", "-d", "1", "-u", "hours")

	out := mustRun(t, config, "export")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != export.Header || len(lines) != 3 {
		t.Fatalf("unexpected csv:\n%s", out)
	}
	if !strings.Contains(out, `"said "hi""`) {
		t.Errorf("default export should keep quotes unescaped:\n%s", out)
	}
	if out := mustRun(t, config, "export", "--strict"); !strings.Contains(out, `"said ""hi"""`) {
		t.Errorf("strict export should double quotes:\n%s", out)
	}

	backup := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, config, "export", "--format", "json", "-o", backup)
	before := listJSON(t, config)

	if _, err := run(t, config, "clear"); err == nil {
		t.Fatal("clear without --yes should fail")
	}
	if got := listJSON(t, config); len(got) != 2 {
		t.Fatalf("clear without --yes must keep sessions, got %d", len(got))
	}

	mustRun(t, config, "clear", "--yes")
	if got := listJSON(t, config); len(got) != 0 {
		t.Fatalf("expected empty collection after clear, got %d", len(got))
	}

	mustRun(t, config, "import", backup)
	after := listJSON(t, config)
	if len(after) != len(before) {
		t.Fatalf("import restored %d sessions, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Notes != before[i].Notes || !after[i].CreatedAt.Equal(before[i].CreatedAt) {
			t.Errorf("session %d differs after import: %+v vs %+v", i, after[i], before[i])
		}
	}
}

func TestImportRejectsInvalidBackup(t *testing.T) {
	config := writeConfig(t)
	mustRun(t, config, "add", "-s", "Math", "-d", "30")

	bad := filepath.Join(t.TempDir(), "bad.json")
	content := `[{"id":"a","subject":"Math","duration":0,"timeUnit":"minutes","date":"2024-03-01","notes":"","timestamp":"2024-03-01T10:00:00Z"}]`
	if err := os.WriteFile(bad, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, config, "import", bad); err == nil {
		t.Fatal("expected invalid backup to be rejected")
	}
	if got := listJSON(t, config); len(got) != 1 {
		t.Errorf("rejected import must keep existing sessions, got %d", len(got))
	}

	null := filepath.Join(t.TempDir(), "null.json")
	if err := os.WriteFile(null, []byte("null"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, config, "import", null); err == nil {
		t.Fatal("expected a null backup to be rejected")
	}
	if got := listJSON(t, config); len(got) != 1 {
		t.Errorf("null backup must keep existing sessions, got %d", len(got))
	}
}

func TestStatsOutput(t *testing.T) {
	config := writeConfig(t)
	mustRun(t, config, "add", "-s", "Math", "-d", "90")

	out := mustRun(t, config, "stats", "--days", "3")
	for _, want := range []string{"Today", "1h 30m", "This week", "By subject", "Math", "Last 3 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, config, "stats", "--days", "0"); err == nil {
		t.Error("--days 0 should be rejected")
	}
}

func TestVersionAndHelp(t *testing.T) {
	config := writeConfig(t)
	SetVersion("1.2.3", "abc", "today")

	if out := mustRun(t, config, "version"); !strings.Contains(out, "studylog 1.2.3") {
		t.Errorf("unexpected version output: %q", out)
	}
	if out := mustRun(t, config, "help"); !strings.Contains(out, "import <file.json>") {
		t.Errorf("help should list import:\n%s", out)
	}
}
