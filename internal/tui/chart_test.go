package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/balkashynov/studylog/internal/app"
	"github.com/balkashynov/studylog/internal/models"
	"github.com/balkashynov/studylog/internal/stats"
)

func TestRenderBarChart(t *testing.T) {
	bars := []Bar{
		{Label: "math", Value: 120},
		{Label: "physics", Value: 60},
		{Label: "art", Value: 1},
		{Label: "idle", Value: 0},
	}

	out := RenderBarChart(bars, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != len(bars) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(bars), out)
	}

	tests := []struct {
		line  string
		cells int
		total string
	}{
		{lines[0], 10, "2h"},
		{lines[1], 5, "1h"},
		{lines[2], 1, "1 min"},
		{lines[3], 0, "0 min"},
	}
	for _, tt := range tests {
		if got := strings.Count(tt.line, "█"); got != tt.cells {
			t.Errorf("line %q has %d cells, want %d", tt.line, got, tt.cells)
		}
		if !strings.HasSuffix(tt.line, tt.total) {
			t.Errorf("line %q should end with %q", tt.line, tt.total)
		}
	}

	// Labels are padded to a common width
	if !strings.HasPrefix(lines[2], "art     ") {
		t.Errorf("label not padded: %q", lines[2])
	}
}

func TestRenderBarChartEmpty(t *testing.T) {
	if got := RenderBarChart(nil, 10); got != "" {
		t.Errorf("expected empty chart, got %q", got)
	}

	out := RenderBarChart([]Bar{{Label: "a", Value: 0}, {Label: "b", Value: 0}}, 5)
	if strings.Contains(out, "█") {
		t.Errorf("all-zero chart should draw no cells:\n%s", out)
	}
}

func TestDailyBarsLabels(t *testing.T) {
	series := []stats.DayTotal{
		{Date: models.NewDate(2024, time.June, 9), Minutes: 30},
		{Date: models.NewDate(2024, time.June, 10), Minutes: 0},
	}

	bars := DailyBars(series)
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if bars[0].Label != "Sun 09/06" || bars[0].Value != 30 {
		t.Errorf("unexpected first bar: %+v", bars[0])
	}
	if bars[1].Label != "Mon 10/06" {
		t.Errorf("unexpected second label: %q", bars[1].Label)
	}
}

func TestRenderDashboard(t *testing.T) {
	today := models.NewDate(2024, time.June, 12)
	sessions := []models.StudySession{
		{ID: "1", Subject: "math", Duration: 2, TimeUnit: models.UnitHours, Date: today},
		{ID: "2", Subject: "physics", Duration: 45, TimeUnit: models.UnitMinutes, Date: today.AddDays(-1)},
	}
	view := app.View{
		Today:   today,
		Summary: stats.Summarize(sessions, today, 7),
	}

	out := RenderDashboard(view, 90)
	for _, want := range []string{"Today", "2h", "This week", "2h 45m", "Sessions", "math", "physics", "Last 7 days", "Wed 12/06"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDashboardEmpty(t *testing.T) {
	today := models.NewDate(2024, time.June, 12)
	view := app.View{Today: today, Summary: stats.Summarize(nil, today, 7)}

	out := RenderDashboard(view, 90)
	if !strings.Contains(out, "No sessions logged yet") {
		t.Errorf("expected empty-state hint:\n%s", out)
	}
}
