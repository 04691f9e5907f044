package stats

import (
	"time"

	"github.com/balkashynov/studylog/internal/duration"
	"github.com/balkashynov/studylog/internal/models"
)

// DefaultSeriesDays is the length of the daily chart series
const DefaultSeriesDays = 7

// SubjectTotal is the normalized time spent on one subject
type SubjectTotal struct {
	Subject string
	Minutes int
}

// DayTotal is the normalized time logged on one calendar date
type DayTotal struct {
	Date    models.Date
	Minutes int
}

// Summary bundles everything one presentation refresh needs
type Summary struct {
	Today      int
	Week       int
	Count      int
	PerSubject []SubjectTotal
	Daily      []DayTotal
}

// TotalMinutes sums the normalized duration of sessions
func TotalMinutes(sessions []models.StudySession) int {
	total := 0
	for _, s := range sessions {
		total += duration.ToMinutes(s.Duration, s.TimeUnit)
	}
	return total
}

// TodayTotal sums the sessions dated today
func TodayTotal(sessions []models.StudySession, today models.Date) int {
	total := 0
	for _, s := range sessions {
		if s.Date == today {
			total += duration.ToMinutes(s.Duration, s.TimeUnit)
		}
	}
	return total
}

// WeekStart returns the most recent Sunday on or before today
func WeekStart(today models.Date) models.Date {
	return today.AddDays(-int(today.Weekday() - time.Sunday))
}

// WeekTotal sums the sessions dated on or after the start of today's week.
// Sessions dated after today are counted too.
func WeekTotal(sessions []models.StudySession, today models.Date) int {
	start := WeekStart(today)
	total := 0
	for _, s := range sessions {
		if !s.Date.Before(start) {
			total += duration.ToMinutes(s.Duration, s.TimeUnit)
		}
	}
	return total
}

// PerSubjectTotals groups minutes by subject, ordered by first appearance
func PerSubjectTotals(sessions []models.StudySession) []SubjectTotal {
	index := make(map[string]int)
	totals := []SubjectTotal{}
	for _, s := range sessions {
		i, ok := index[s.Subject]
		if !ok {
			i = len(totals)
			index[s.Subject] = i
			totals = append(totals, SubjectTotal{Subject: s.Subject})
		}
		totals[i].Minutes += duration.ToMinutes(s.Duration, s.TimeUnit)
	}
	return totals
}

// DailySeries returns one entry per date for the days ending at today,
// oldest first. Days with nothing logged are reported as zero.
func DailySeries(sessions []models.StudySession, today models.Date, days int) []DayTotal {
	if days <= 0 {
		return []DayTotal{}
	}

	first := today.AddDays(-(days - 1))
	series := make([]DayTotal, days)
	position := make(map[models.Date]int, days)
	for i := range series {
		date := first.AddDays(i)
		series[i].Date = date
		position[date] = i
	}

	for _, s := range sessions {
		if i, ok := position[s.Date]; ok {
			series[i].Minutes += duration.ToMinutes(s.Duration, s.TimeUnit)
		}
	}
	return series
}

// Summarize computes every statistic for one refresh
func Summarize(sessions []models.StudySession, today models.Date, days int) Summary {
	return Summary{
		Today:      TodayTotal(sessions, today),
		Week:       WeekTotal(sessions, today),
		Count:      len(sessions),
		PerSubject: PerSubjectTotals(sessions),
		Daily:      DailySeries(sessions, today, days),
	}
}
