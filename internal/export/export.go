package export

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/studylog/internal/models"
)

// Header is the first line of tabular output
const Header = "Subject,Duration,Time Unit,Date,Notes,Timestamp"

// ToTabular renders sessions as CSV-like text in collection order.
// Subject and notes are wrapped in quotes but embedded quotes and newlines are
// written as-is, matching the format older exports were produced in.
func ToTabular(sessions []models.StudySession) string {
	return render(sessions, func(s string) string { return `"` + s + `"` })
}

// ToTabularEscaped is ToTabular with embedded quotes doubled, so the output
// parses as RFC 4180 CSV.
func ToTabularEscaped(sessions []models.StudySession) string {
	return render(sessions, func(s string) string {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	})
}

func render(sessions []models.StudySession, quote func(string) string) string {
	rows := make([]string, 0, len(sessions)+1)
	rows = append(rows, Header)
	for _, s := range sessions {
		rows = append(rows, strings.Join([]string{
			quote(s.Subject),
			strconv.Itoa(s.Duration),
			string(s.TimeUnit),
			s.Date.String(),
			quote(s.Notes),
			s.CreatedAt.UTC().Format(time.RFC3339),
		}, ","))
	}
	return strings.Join(rows, "\n")
}

// ToJSON renders sessions in the same shape as the durable slot, so the
// result can be fed back through import
func ToJSON(sessions []models.StudySession) ([]byte, error) {
	if sessions == nil {
		sessions = []models.StudySession{}
	}
	return json.MarshalIndent(sessions, "", "  ")
}

// ErrNotSessionList is returned for a backup that decodes to no array at all,
// such as a bare null
var ErrNotSessionList = errors.New("backup must be a JSON array of sessions")

// FromJSON parses a JSON backup produced by ToJSON
func FromJSON(data []byte) ([]models.StudySession, error) {
	var sessions []models.StudySession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		return nil, ErrNotSessionList
	}
	return sessions, nil
}
