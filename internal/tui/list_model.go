package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studylog/internal/app"
	"github.com/balkashynov/studylog/internal/duration"
	"github.com/balkashynov/studylog/internal/filter"
	"github.com/balkashynov/studylog/internal/models"
	"github.com/balkashynov/studylog/internal/parser"
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusFilter
	FocusModal
	FocusDashboard
)

// ListModel browses, filters and deletes sessions
type ListModel struct {
	app    *app.App
	view   app.View
	width  int
	height int

	selected int // index into view.Filtered
	focus    Focus

	filterInput textinput.Model
	status      string

	// Pagination
	currentPage     int
	sessionsPerPage int

	// Delete confirmation modal
	deleteChoice bool
}

// NewListModel creates a new list TUI model
func NewListModel(a *app.App) ListModel {
	input := textinput.New()
	input.Placeholder = "subject contains..."
	input.CharLimit = 100
	input.Prompt = "Filter: "
	input.SetValue(a.Criteria().Subject)

	return ListModel{
		app:             a,
		view:            a.View(),
		focus:           FocusTable,
		filterInput:     input,
		sessionsPerPage: 10,
	}
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return nil
}

// refresh rebuilds the view after an action and keeps the selection in range
func (m ListModel) refresh() ListModel {
	m.view = m.app.View()
	if m.selected >= len(m.view.Filtered) {
		m.selected = len(m.view.Filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.currentPage = m.selected / m.sessionsPerPage
	return m
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// header, summary, pagination, help and borders
		available := m.height - 12
		if available < 3 {
			available = 3
		}
		m.sessionsPerPage = available
		m.currentPage = m.selected / m.sessionsPerPage
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case FocusFilter:
			return m.handleFilterKeys(msg)
		case FocusModal:
			return m.handleModalKeys(msg)
		case FocusDashboard:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "s":
				m.focus = FocusTable
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			return m.moveSelection(-1), nil

		case "down", "j":
			return m.moveSelection(1), nil

		case "left", "h":
			return m.changePage(-1), nil

		case "right", "l":
			return m.changePage(1), nil

		case "/":
			m.focus = FocusFilter
			m.filterInput.Focus()
			return m, textinput.Blink

		case "c":
			m.app.SetFilter(filter.Criteria{})
			m.filterInput.SetValue("")
			m.status = "Filter cleared"
			return m.refresh(), nil

		case "s":
			m.focus = FocusDashboard
			return m, nil

		case "d", "delete":
			if len(m.view.Filtered) == 0 {
				return m, nil
			}
			m.focus = FocusModal
			m.deleteChoice = false
			return m, nil
		}
	}

	return m, nil
}

// handleFilterKeys edits the subject filter
func (m ListModel) handleFilterKeys(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = FocusTable
		m.filterInput.Blur()
		m.filterInput.SetValue(m.app.Criteria().Subject)
		return m, nil

	case "enter":
		m.focus = FocusTable
		m.filterInput.Blur()
		criteria := m.app.Criteria()
		criteria.Subject = strings.TrimSpace(m.filterInput.Value())
		m.app.SetFilter(criteria)
		m.selected = 0
		m = m.refresh()
		m.status = fmt.Sprintf("%d matching sessions", len(m.view.Filtered))
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// handleModalKeys drives the delete confirmation
func (m ListModel) handleModalKeys(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "left", "right":
		m.deleteChoice = !m.deleteChoice
		return m, nil
	case "y", "Y":
		m.deleteChoice = true
	case "n", "N":
		m.deleteChoice = false
	case "enter":
	case "esc":
		m.focus = FocusTable
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}

	m.focus = FocusTable
	if !m.deleteChoice {
		return m, nil
	}

	session := m.view.Filtered[m.selected]
	if m.app.Delete(session.ID) {
		m.status = fmt.Sprintf("Deleted %s session %s", session.Subject, shortID(session.ID))
	}
	return m.refresh(), nil
}

// moveSelection moves the cursor by delta rows, following across pages
func (m ListModel) moveSelection(delta int) ListModel {
	next := m.selected + delta
	if next < 0 || next >= len(m.view.Filtered) {
		return m
	}
	m.selected = next
	m.currentPage = m.selected / m.sessionsPerPage
	return m
}

// changePage moves by delta pages and clamps the selection into it
func (m ListModel) changePage(delta int) ListModel {
	page := m.currentPage + delta
	if page < 0 || page >= m.totalPages() {
		return m
	}
	m.currentPage = page
	start := page * m.sessionsPerPage
	end := min(start+m.sessionsPerPage, len(m.view.Filtered)) - 1
	if m.selected < start {
		m.selected = start
	}
	if m.selected > end {
		m.selected = end
	}
	return m
}

func (m ListModel) totalPages() int {
	if len(m.view.Filtered) == 0 {
		return 1
	}
	return (len(m.view.Filtered) + m.sessionsPerPage - 1) / m.sessionsPerPage
}

// View renders the TUI
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.focus {
	case FocusDashboard:
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(1).
			Render(RenderDashboard(m.view, m.width-6)) + "\n" + m.renderHelp("s/esc back · q quit")
	case FocusModal:
		session := m.view.Filtered[m.selected]
		question := fmt.Sprintf("Delete %s session from %s?", session.Subject, session.Date)
		return renderConfirmModal(m.width, m.height, question, m.deleteChoice)
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTable(leftWidth),
		" ",
		m.renderDetails(rightWidth),
	)

	var bottom string
	if m.focus == FocusFilter {
		bottom = m.filterInput.View()
	} else {
		bottom = m.renderHelp("↑/↓ nav · ←/→ page · / filter · c clear · d delete · s stats · q/esc quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderSummary(), content, bottom)
}

// renderSummary renders the one-line totals header
func (m ListModel) renderSummary() string {
	accent := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	summary := m.view.Summary
	line := fmt.Sprintf("%s %s   %s %s   %s %d",
		muted.Render("Today"), accent.Render(duration.FormatMinutes(summary.Today)),
		muted.Render("Week"), accent.Render(duration.FormatMinutes(summary.Week)),
		muted.Render("Sessions"), summary.Count)

	if !m.view.Criteria.IsZero() {
		line += muted.Render(fmt.Sprintf("   filter: %q", m.view.Criteria.Subject))
	}
	if m.status != "" {
		line += "   " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.status)
	}
	return line
}

// renderTable renders the left panel with the session table
func (m ListModel) renderTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render("📚 Sessions"))
	b.WriteString("\n\n")

	sessions := m.view.Filtered
	if len(sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		msg := "No sessions yet. Use 'studylog add' to log one."
		if !m.view.Criteria.IsZero() {
			msg = "No sessions match the filter. Press c to clear it."
		}
		b.WriteString(emptyStyle.Render(msg))
		return m.panel(width).Render(b.String())
	}

	dateWidth := 10
	durWidth := 8
	subjectWidth := width - dateWidth - durWidth - 10
	if subjectWidth < 12 {
		subjectWidth = 12
	}

	columnStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Padding(0, 1)
	b.WriteString(columnStyle.Render(fmt.Sprintf("%-*s %-*s %s", dateWidth, "DATE", subjectWidth, "SUBJECT", "TIME")))
	b.WriteString("\n")

	start := m.currentPage * m.sessionsPerPage
	end := min(start+m.sessionsPerPage, len(sessions))
	for i := start; i < end; i++ {
		session := sessions[i]
		row := fmt.Sprintf("%-*s %-*s %s",
			dateWidth, session.Date.String(),
			subjectWidth, truncate(session.Subject, subjectWidth),
			sessionMinutes(session))

		if i == m.selected {
			b.WriteString(lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1).
				Render(row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if m.totalPages() > 1 {
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1)
		b.WriteString(pageStyle.Render(fmt.Sprintf("Page %d/%d (%d sessions)", m.currentPage+1, m.totalPages(), len(sessions))))
	}

	return m.panel(width).Render(b.String())
}

// renderDetails renders the right panel for the selected session
func (m ListModel) renderDetails(width int) string {
	var b strings.Builder

	if len(m.view.Filtered) == 0 {
		logoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width - 2)
		b.WriteString(logoStyle.Render("studylog"))
		return m.panel(width).Render(b.String())
	}

	session := m.view.Filtered[m.selected]
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Render("📖 " + session.Subject))
	b.WriteString("\n\n")

	b.WriteString(label.Render("Time: "))
	b.WriteString(accent.Render(sessionMinutes(session)))
	b.WriteString(label.Render(fmt.Sprintf(" (%d %s)", session.Duration, session.TimeUnit)))
	b.WriteString("\n")

	b.WriteString(label.Render("Date: "))
	b.WriteString(parser.FormatStudyDate(session.Date, m.view.Today))
	b.WriteString("\n")

	b.WriteString(label.Render("Logged: "))
	b.WriteString(session.CreatedAt.Local().Format("02/01/2006 15:04"))
	b.WriteString("\n")

	b.WriteString(label.Render("ID: "))
	b.WriteString(session.ID)
	b.WriteString("\n")

	if session.Notes != "" {
		b.WriteString("\n")
		b.WriteString(label.Render("Notes:"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Width(width - 4).
			Render(session.Notes))
	}

	return m.panel(width).Render(b.String())
}

func (m ListModel) panel(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)
}

func (m ListModel) renderHelp(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(text)
}

// sessionMinutes formats a session's duration in minutes-based form
func sessionMinutes(session models.StudySession) string {
	return duration.FormatMinutes(duration.ToMinutes(session.Duration, session.TimeUnit))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
