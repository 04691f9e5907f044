package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/studylog/internal/app"
)

// RunAddSessionTUI starts the interactive add wizard and prints the outcome to out
func RunAddSessionTUI(a *app.App, prefilled map[string]string, out io.Writer) error {
	p := tea.NewProgram(NewAddSessionModel(a, prefilled), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(AddSessionModel)
	if !ok {
		return nil
	}

	session, completed, runErr := m.Result()
	switch {
	case runErr != nil:
		return runErr
	case completed:
		fmt.Fprintln(out, savedMessage(session, a.Today()))
	case m.cancelled:
		fmt.Fprintln(out, "❌ Session not logged.")
	}
	return nil
}

// RunListTUI starts the interactive session browser
func RunListTUI(a *app.App) error {
	p := tea.NewProgram(NewListModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
