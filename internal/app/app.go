package app

import (
	"fmt"
	"strings"

	"github.com/balkashynov/studylog/internal/clock"
	"github.com/balkashynov/studylog/internal/export"
	"github.com/balkashynov/studylog/internal/filter"
	"github.com/balkashynov/studylog/internal/models"
	"github.com/balkashynov/studylog/internal/stats"
	"github.com/balkashynov/studylog/internal/store"
)

// View is everything the presentation layer renders after an action.
// It is rebuilt from the store snapshot every time, never cached.
type View struct {
	Today    models.Date
	Criteria filter.Criteria
	Filtered []models.StudySession
	Subjects []string
	Summary  stats.Summary
}

// App maps user actions onto the store and derives views from it.
// Each action is one call followed by one View() for rendering.
type App struct {
	store    *store.Store
	clock    clock.Clock
	days     int
	criteria filter.Criteria
}

// New wires an App around an already loaded store
func New(s *store.Store, c clock.Clock, seriesDays int) *App {
	if c == nil {
		c = clock.RealClock{}
	}
	if seriesDays <= 0 {
		seriesDays = stats.DefaultSeriesDays
	}
	return &App{store: s, clock: c, days: seriesDays}
}

// Today returns the current calendar date
func (a *App) Today() models.Date {
	return models.DateOf(a.clock.Now())
}

// Submit handles an add-session request
func (a *App) Submit(in store.NewSession) (models.StudySession, error) {
	return a.store.Add(in)
}

// Delete handles a delete-by-id request
func (a *App) Delete(id string) bool {
	return a.store.Remove(id)
}

// Clear handles a clear-all request. Confirmation is up to the caller.
func (a *App) Clear() {
	a.store.Clear()
}

// Import replaces the collection with a backup
func (a *App) Import(sessions []models.StudySession) error {
	return a.store.ReplaceAll(sessions)
}

// SetFilter replaces the current filter criteria
func (a *App) SetFilter(criteria filter.Criteria) {
	a.criteria = criteria
}

// Criteria returns the current filter criteria
func (a *App) Criteria() filter.Criteria {
	return a.criteria
}

// Resolve finds a session by full id or unambiguous id prefix
func (a *App) Resolve(idOrPrefix string) (models.StudySession, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return models.StudySession{}, store.ErrNotFound
	}
	if session, ok := a.store.Get(idOrPrefix); ok {
		return session, nil
	}

	var matches []models.StudySession
	for _, session := range a.store.All() {
		if strings.HasPrefix(session.ID, idOrPrefix) {
			matches = append(matches, session)
		}
	}
	switch len(matches) {
	case 0:
		return models.StudySession{}, fmt.Errorf("%w: %s", store.ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return models.StudySession{}, fmt.Errorf("id prefix %q matches %d sessions", idOrPrefix, len(matches))
	}
}

// Sessions returns the full collection, newest first
func (a *App) Sessions() []models.StudySession {
	return a.store.All()
}

// View recomputes the filtered list and statistics from the store.
// Statistics always cover the whole collection, not the filtered list.
func (a *App) View() View {
	all := a.store.All()
	today := a.Today()
	return View{
		Today:    today,
		Criteria: a.criteria,
		Filtered: filter.Apply(all, a.criteria),
		Subjects: filter.DistinctSubjects(all),
		Summary:  stats.Summarize(all, today, a.days),
	}
}

// Export renders the full collection for download
func (a *App) Export(strict bool) string {
	if strict {
		return export.ToTabularEscaped(a.store.All())
	}
	return export.ToTabular(a.store.All())
}

// ExportJSON renders the full collection as a JSON backup
func (a *App) ExportJSON() ([]byte, error) {
	return export.ToJSON(a.store.All())
}
