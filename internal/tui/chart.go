package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studylog/internal/app"
	"github.com/balkashynov/studylog/internal/duration"
	"github.com/balkashynov/studylog/internal/stats"
)

// Bar is one labelled row of a horizontal bar chart, value in minutes
type Bar struct {
	Label string
	Value int
}

// RenderBarChart draws one row per bar. The largest value fills width cells
// and any non-zero value gets at least one cell.
func RenderBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	if width < 1 {
		width = 1
	}

	labelWidth, maxValue := 0, 0
	for _, bar := range bars {
		if w := lipgloss.Width(bar.Label); w > labelWidth {
			labelWidth = w
		}
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	rows := make([]string, 0, len(bars))
	for _, bar := range bars {
		cells := 0
		if maxValue > 0 && bar.Value > 0 {
			cells = bar.Value * width / maxValue
			if cells == 0 {
				cells = 1
			}
		}

		label := bar.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(bar.Label))
		filled := barStyle.Render(strings.Repeat("█", cells))
		rest := emptyStyle.Render(strings.Repeat("·", width-cells))
		rows = append(rows, fmt.Sprintf("%s %s%s %s", label, filled, rest, duration.FormatMinutes(bar.Value)))
	}
	return strings.Join(rows, "\n")
}

// SubjectBars converts per-subject totals into chart rows
func SubjectBars(totals []stats.SubjectTotal) []Bar {
	bars := make([]Bar, 0, len(totals))
	for _, total := range totals {
		bars = append(bars, Bar{Label: total.Subject, Value: total.Minutes})
	}
	return bars
}

// DailyBars converts a daily series into chart rows labelled "Mon 02/01"
func DailyBars(series []stats.DayTotal) []Bar {
	bars := make([]Bar, 0, len(series))
	for _, day := range series {
		bars = append(bars, Bar{Label: day.Date.Time().Format("Mon 02/01"), Value: day.Minutes})
	}
	return bars
}

// RenderDashboard renders the summary cards and both charts for a view
func RenderDashboard(view app.View, width int) string {
	if width < 40 {
		width = 40
	}
	chartWidth := width / 3
	summary := view.Summary

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 2)
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true)

	card := func(label, value string) string {
		return cardStyle.Render(label + "\n" + headerStyle.Render(value))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Today", duration.FormatMinutes(summary.Today)),
		" ",
		card("This week", duration.FormatMinutes(summary.Week)),
		" ",
		card("Sessions", fmt.Sprintf("%d", summary.Count)),
	))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("By subject"))
	b.WriteString("\n")
	if len(summary.PerSubject) == 0 {
		b.WriteString(mutedStyle.Render("No sessions logged yet"))
	} else {
		b.WriteString(RenderBarChart(SubjectBars(summary.PerSubject), chartWidth))
	}
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("Last %d days", len(summary.Daily))))
	b.WriteString("\n")
	b.WriteString(RenderBarChart(DailyBars(summary.Daily), chartWidth))

	return b.String()
}
