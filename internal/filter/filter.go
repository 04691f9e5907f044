package filter

import (
	"sort"
	"strings"

	"github.com/balkashynov/studylog/internal/models"
)

// Criteria narrows a session list. The zero value matches everything.
type Criteria struct {
	Subject string       // case-insensitive substring, empty matches all
	Date    *models.Date // exact study date, nil matches all
}

// IsZero reports whether the criteria match every session
func (c Criteria) IsZero() bool {
	return c.Subject == "" && c.Date == nil
}

// Matches reports whether one session passes the criteria
func (c Criteria) Matches(session models.StudySession) bool {
	needle := strings.ToLower(c.Subject)
	if needle != "" && !strings.Contains(strings.ToLower(session.Subject), needle) {
		return false
	}
	if c.Date != nil && session.Date != *c.Date {
		return false
	}
	return true
}

// Apply returns the sessions passing criteria, keeping input order
func Apply(sessions []models.StudySession, criteria Criteria) []models.StudySession {
	out := make([]models.StudySession, 0, len(sessions))
	for _, session := range sessions {
		if criteria.Matches(session) {
			out = append(out, session)
		}
	}
	return out
}

// DistinctSubjects returns each subject once, sorted. "Math" and "math" are
// different subjects.
func DistinctSubjects(sessions []models.StudySession) []string {
	seen := make(map[string]bool)
	subjects := []string{}
	for _, session := range sessions {
		if !seen[session.Subject] {
			seen[session.Subject] = true
			subjects = append(subjects, session.Subject)
		}
	}
	sort.Strings(subjects)
	return subjects
}
