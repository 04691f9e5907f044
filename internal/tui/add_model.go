package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studylog/internal/app"
	"github.com/balkashynov/studylog/internal/duration"
	"github.com/balkashynov/studylog/internal/models"
	"github.com/balkashynov/studylog/internal/parser"
	"github.com/balkashynov/studylog/internal/store"
)

// Step represents the current step in the wizard
type Step int

const (
	StepSubject Step = iota
	StepDuration
	StepUnit
	StepDate
	StepNotes
	StepSave
)

var stepLabels = []string{"Subject", "Duration", "Unit", "Date", "Notes", "Save"}

// AddSessionModel is the step-by-step wizard for logging a session
type AddSessionModel struct {
	app         *app.App
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	// Pre-filled data from flags or quick-add parsing
	prefilled map[string]string

	// State
	saved         models.StudySession
	err           error
	completed     bool
	cancelled     bool
	validationErr string

	// Save confirmation modal
	showSaveModal   bool
	saveModalChoice bool // true for Yes, false for No
}

// NewAddSessionModel creates the wizard. Recognised prefilled keys are
// subject, duration, unit, date and notes.
func NewAddSessionModel(a *app.App, prefilled map[string]string) AddSessionModel {
	inputs := make([]textinput.Model, StepSave)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepSubject].Placeholder = "What did you study? (required)"
	inputs[StepSubject].CharLimit = 100
	inputs[StepSubject].Focus()

	inputs[StepDuration].Placeholder = "How long? e.g. 45 (required)"
	inputs[StepDuration].CharLimit = 5

	inputs[StepUnit].Placeholder = "minutes or hours (Enter for minutes)"
	inputs[StepUnit].CharLimit = 10

	inputs[StepDate].Placeholder = "today, yesterday, 3 days ago, dd/mm/yyyy (Enter for today)"
	inputs[StepDate].CharLimit = 30

	inputs[StepNotes].Placeholder = "Additional notes (Enter to skip)"
	inputs[StepNotes].CharLimit = 500

	keys := map[string]Step{
		"subject":  StepSubject,
		"duration": StepDuration,
		"unit":     StepUnit,
		"date":     StepDate,
		"notes":    StepNotes,
	}
	for key, step := range keys {
		if value, ok := prefilled[key]; ok {
			inputs[step].SetValue(value)
		}
	}

	return AddSessionModel{
		app:         a,
		currentStep: StepSubject,
		inputs:      inputs,
		prefilled:   prefilled,
	}
}

// Init initializes the model
func (m AddSessionModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AddSessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputWidth := (m.width * 2 / 3) - 10
		if inputWidth < 30 {
			inputWidth = 30
		}
		if inputWidth > 80 {
			inputWidth = 80
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		if m.showSaveModal {
			return m.handleModalKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.currentStep == StepSave {
				return m.prevStep()
			}
			if !m.hasChanges() {
				m.cancelled = true
				return m, tea.Quit
			}
			m.showSaveModal = true
			m.saveModalChoice = true
			return m, nil

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			if msg := m.validateStep(m.currentStep); msg != "" {
				m.validationErr = msg
				return m, nil
			}
			m.validationErr = ""
			return m.nextStep()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

func (m AddSessionModel) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right":
		m.saveModalChoice = !m.saveModalChoice
		return m, nil
	case "y", "Y":
		m.saveModalChoice = true
		return m.handleSaveChoice()
	case "n", "N":
		m.saveModalChoice = false
		return m.handleSaveChoice()
	case "enter":
		return m.handleSaveChoice()
	case "esc":
		m.showSaveModal = false
		return m, nil
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// value returns the trimmed input for a step
func (m AddSessionModel) value(step Step) string {
	return strings.TrimSpace(m.inputs[step].Value())
}

// validateStep returns a user-facing message when the step input is invalid
func (m AddSessionModel) validateStep(step Step) string {
	switch step {
	case StepSubject:
		if m.value(StepSubject) == "" {
			return "Subject is required"
		}
	case StepDuration:
		if _, err := m.durationValue(); err != nil {
			return "Duration must be a whole number greater than zero"
		}
	case StepUnit:
		if _, err := m.unitValue(); err != nil {
			return "Invalid unit: " + err.Error()
		}
	case StepDate:
		if _, err := m.dateValue(); err != nil {
			return "Invalid date: " + err.Error()
		}
	}
	return ""
}

func (m AddSessionModel) durationValue() (int, error) {
	amount, err := strconv.Atoi(m.value(StepDuration))
	if err != nil || amount <= 0 {
		return 0, errors.New("duration must be a positive whole number")
	}
	return amount, nil
}

func (m AddSessionModel) unitValue() (models.TimeUnit, error) {
	if m.value(StepUnit) == "" {
		return models.UnitMinutes, nil
	}
	return duration.ParseUnit(m.value(StepUnit))
}

func (m AddSessionModel) dateValue() (models.Date, error) {
	return parser.ParseStudyDate(m.value(StepDate), m.app.Today())
}

// hasChanges reports whether any field holds content
func (m AddSessionModel) hasChanges() bool {
	for step := StepSubject; step < StepSave; step++ {
		if m.value(step) != "" {
			return true
		}
	}
	return false
}

// handleEnter validates the current step and advances, or saves on the last step
func (m AddSessionModel) handleEnter() (AddSessionModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep == StepSave {
		return m.saveSession()
	}
	if msg := m.validateStep(m.currentStep); msg != "" {
		m.validationErr = msg
		return m, nil
	}
	return m.nextStep()
}

// nextStep moves to the next step
func (m AddSessionModel) nextStep() (AddSessionModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

// prevStep moves to the previous step
func (m AddSessionModel) prevStep() (AddSessionModel, tea.Cmd) {
	if m.currentStep > StepSubject {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	m.validationErr = ""
	return m, textinput.Blink
}

// saveSession validates every step and submits the session
func (m AddSessionModel) saveSession() (AddSessionModel, tea.Cmd) {
	for step := StepSubject; step < StepSave; step++ {
		if msg := m.validateStep(step); msg != "" {
			m.validationErr = msg
			m.inputs[m.currentStep].Blur()
			m.currentStep = step
			m.inputs[step].Focus()
			return m, nil
		}
	}

	amount, _ := m.durationValue()
	unit, _ := m.unitValue()
	date, _ := m.dateValue()

	session, err := m.app.Submit(store.NewSession{
		Subject:  m.value(StepSubject),
		Duration: amount,
		TimeUnit: unit,
		Date:     date,
		Notes:    m.value(StepNotes),
	})
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			m.validationErr = verr.Reason
			return m, nil
		}
		m.err = err
		return m, tea.Quit
	}

	m.saved = session
	m.completed = true
	return m, tea.Quit
}

// handleSaveChoice handles the save confirmation modal response
func (m AddSessionModel) handleSaveChoice() (AddSessionModel, tea.Cmd) {
	m.showSaveModal = false
	if m.saveModalChoice {
		return m.saveSession()
	}
	m.cancelled = true
	return m, tea.Quit
}

// View renders the TUI
func (m AddSessionModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	if m.width < 85 {
		return m.renderSmallLayout()
	}

	rightWidth := 50
	leftWidth := m.width - rightWidth - 4

	leftStyle := lipgloss.NewStyle().
		Width(leftWidth).
		Height(m.height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)
	rightStyle := lipgloss.NewStyle().
		Width(rightWidth).
		Height(m.height - 2).
		Padding(1)

	mainView := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.renderWizard()),
		" ",
		rightStyle.Render(m.renderPreview()),
	)

	if m.showSaveModal {
		return renderConfirmModal(m.width, m.height, "Save this session?", m.saveModalChoice)
	}
	return mainView
}

// renderWizard renders the step list and the active input
func (m AddSessionModel) renderWizard() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("📚 Log Study Session"))
	b.WriteString("\n\n")

	current := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	skipped := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	future := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	for i, label := range stepLabels {
		step := Step(i)
		if step == StepSave {
			b.WriteString("\n")
			label = "💾 " + label
		}
		switch {
		case step == m.currentStep:
			b.WriteString(current.Render("▶ " + label))
		case step < m.currentStep && m.value(step) != "":
			b.WriteString(done.Render("✓ " + label))
		case step < m.currentStep:
			b.WriteString(skipped.Render("  " + label))
		default:
			b.WriteString(future.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.currentStep {
	case StepSubject:
		b.WriteString("📖 Subject\n")
	case StepDuration:
		b.WriteString("⏱  Duration\n")
	case StepUnit:
		b.WriteString("📏 Unit\n")
	case StepDate:
		b.WriteString("📅 Date\n")
	case StepNotes:
		b.WriteString("📝 Notes\n")
	case StepSave:
		b.WriteString("💾 Save Session\n")
		b.WriteString("Press Enter to save")
	}
	if m.currentStep < StepSave {
		b.WriteString(m.inputs[m.currentStep].View())
	}

	if m.validationErr != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true).
			MarginTop(1)
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("❌ " + m.validationErr))
	}

	b.WriteString("\n\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString(helpStyle.Render("Enter: Next | Tab/↓: Next | Shift+Tab/↑: Back | Esc: Cancel"))

	return b.String()
}

// previewLines describes the session as it would be saved
func (m AddSessionModel) previewLines() []string {
	var lines []string
	if subject := m.value(StepSubject); subject != "" {
		lines = append(lines, "📖 "+subject)
	}
	if amount, err := m.durationValue(); err == nil {
		unit, unitErr := m.unitValue()
		if unitErr != nil {
			unit = models.UnitMinutes
		}
		lines = append(lines, "⏱  "+duration.FormatMinutes(duration.ToMinutes(amount, unit)))
	}
	today := m.app.Today()
	if date, err := m.dateValue(); err == nil {
		if date.IsZero() {
			date = today
		}
		lines = append(lines, "📅 "+parser.FormatStudyDate(date, today))
	} else {
		lines = append(lines, "📅 "+m.value(StepDate))
	}
	if notes := m.value(StepNotes); notes != "" {
		lines = append(lines, "📝 "+notes)
	}
	return lines
}

// renderPreview renders the live session card
func (m AddSessionModel) renderPreview() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Align(lipgloss.Center)
	subjectStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Center).
		Width(38)
	metaStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Padding(0, 1)

	subject := m.value(StepSubject)
	if subject == "" {
		subject = "Untitled session"
	}

	var card strings.Builder
	card.WriteString(logoStyle.Render("s t u d y l o g"))
	card.WriteString("\n\n")
	card.WriteString(subjectStyle.Render("🎯 " + subject))
	card.WriteString("\n")
	lines := m.previewLines()
	if len(lines) > 0 && strings.HasPrefix(lines[0], "📖") {
		lines = lines[1:]
	}
	card.WriteString(metaStyle.Render(strings.Join(lines, "\n")))

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(42).
		Padding(1)
	return cardStyle.Render(card.String())
}

// renderSmallLayout renders the wizard in one column for narrow terminals
func (m AddSessionModel) renderSmallLayout() string {
	style := lipgloss.NewStyle().
		Width(max(m.width-2, 20)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)

	var preview strings.Builder
	preview.WriteString("═══ PREVIEW ═══\n")
	preview.WriteString("💡 Tip: Stretch terminal for better UI\n")
	for _, line := range m.previewLines() {
		preview.WriteString(line + "\n")
	}

	content := m.renderWizard() + "\n" + preview.String()
	if m.showSaveModal {
		return renderConfirmModal(m.width, m.height, "Save this session?", m.saveModalChoice)
	}
	return style.Render(content)
}

// renderConfirmModal renders a centered Yes/No modal
func renderConfirmModal(width, height int, question string, yes bool) string {
	yesStyle := lipgloss.NewStyle().Padding(0, 2)
	noStyle := lipgloss.NewStyle().Padding(0, 2)
	if yes {
		yesStyle = yesStyle.
			Background(lipgloss.Color(ColorAccentBright)).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)
	} else {
		noStyle = noStyle.
			Background(lipgloss.Color(ColorError)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)
	}

	var content strings.Builder
	content.WriteString(question + "\n\n")
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		yesStyle.Render("Yes"),
		"   ",
		noStyle.Render("No"),
	))
	content.WriteString("\n\n")
	content.WriteString("← → or Y/N to choose, Enter to confirm\nEsc to cancel")

	modal := lipgloss.NewStyle().
		Width(50).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentBright)).
		Background(lipgloss.Color(ColorCardBackground)).
		Padding(1).
		Align(lipgloss.Center).
		Render(content.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// Result describes how the wizard ended
func (m AddSessionModel) Result() (models.StudySession, bool, error) {
	return m.saved, m.completed, m.err
}

// savedMessage summarises a saved session for the exit message
func savedMessage(session models.StudySession, today models.Date) string {
	minutes := duration.ToMinutes(session.Duration, session.TimeUnit)
	return fmt.Sprintf("✅ Logged %s of %s on %s - ID: %s",
		duration.FormatMinutes(minutes), session.Subject, parser.FormatStudyDate(session.Date, today), shortID(session.ID))
}

// shortID abbreviates a uuid for display; rm accepts the prefix
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
