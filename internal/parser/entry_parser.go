package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/balkashynov/studylog/internal/duration"
	"github.com/balkashynov/studylog/internal/models"
)

var (
	subjectRegex  = regexp.MustCompile(`@([\p{L}\p{N}_-]+)`)
	durationRegex = regexp.MustCompile(`(?i)(?:^|\s)(\d+)\s?(m|min|mins|minutes?|h|hrs?|hours?)(?:\s|$)`)
	dateRegex     = regexp.MustCompile(`(?i)date:([^\s]+)`)
)

// ParsedEntry represents a study session parsed from natural language
type ParsedEntry struct {
	Subject  string
	Duration int
	TimeUnit models.TimeUnit
	Date     models.Date
	Notes    string
	Errors   []string // tokens that were present but invalid
}

// Problems lists invalid tokens plus any required field still missing
func (p ParsedEntry) Problems() []string {
	problems := append([]string{}, p.Errors...)
	if strings.TrimSpace(p.Subject) == "" {
		problems = append(problems, "Missing subject. Use @subject")
	}
	if p.Duration <= 0 && !p.hasDurationError() {
		problems = append(problems, "Missing duration. Use e.g. 45m or 2h")
	}
	return problems
}

func (p ParsedEntry) hasDurationError() bool {
	for _, e := range p.Errors {
		if IsDurationError(e) {
			return true
		}
	}
	return false
}

// IsDurationError reports whether an entry in Errors came from the duration token
func IsDurationError(msg string) bool {
	return strings.HasPrefix(msg, "Duration")
}

// ParseEntry extracts session fields from quick-add text
// Syntax: "Chapter 3 review @calculus 45m date:yesterday"
// Whatever is left after the tokens are removed becomes the notes.
func ParseEntry(input string, today models.Date) ParsedEntry {
	result := ParsedEntry{
		Errors: []string{},
	}

	// Extract subject (@subject)
	if matches := subjectRegex.FindStringSubmatch(input); len(matches) > 1 {
		result.Subject = strings.ReplaceAll(matches[1], "_", " ")
		input = subjectRegex.ReplaceAllString(input, " ")
	}

	// Extract duration (45m, 2h, 90 min)
	if matches := durationRegex.FindStringSubmatch(input); len(matches) > 2 {
		amount, err := strconv.Atoi(matches[1])
		unit, unitErr := duration.ParseUnit(matches[2])
		switch {
		case err != nil || amount <= 0:
			result.Errors = append(result.Errors, "Duration must be greater than zero")
		case unitErr != nil:
			result.Errors = append(result.Errors, "Duration unit: "+unitErr.Error())
		default:
			result.Duration = amount
			result.TimeUnit = unit
		}
		input = strings.Replace(input, strings.TrimSpace(matches[0]), " ", 1)
	}

	// Extract date (date:yesterday, date:2024-12-15, date:3d)
	if matches := dateRegex.FindStringSubmatch(input); len(matches) > 1 {
		date, err := ParseStudyDate(matches[1], today)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid date '"+matches[1]+"': "+err.Error())
		} else {
			result.Date = date
		}
		input = dateRegex.ReplaceAllString(input, " ")
	}

	// Clean up the notes (remove extra spaces)
	result.Notes = strings.Join(strings.Fields(input), " ")

	return result
}
