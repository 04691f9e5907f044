package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/studylog/internal/models"
)

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDateRegex   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	agoRegex       = regexp.MustCompile(`^(\d+)\s*(d|day|days|w|week|weeks)(\s+ago)?$`)
)

// ParseStudyDate parses the date a session happened on.
// Supported formats:
// - "today", "yesterday"
// - yyyy-mm-dd (e.g., "2024-12-15")
// - dd/mm/yyyy (e.g., "15/12/2024")
// - X days ago / X weeks ago (e.g., "3 days ago", "2w", "5d")
// An empty input returns the zero Date, which the store treats as today.
func ParseStudyDate(input string, today models.Date) (models.Date, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return models.Date{}, nil
	}

	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	if matches := isoDateRegex.FindStringSubmatch(input); matches != nil {
		return buildDate(matches[1], matches[2], matches[3])
	}

	// Try dd/mm/yyyy
	if matches := slashDateRegex.FindStringSubmatch(input); matches != nil {
		return buildDate(matches[3], matches[2], matches[1])
	}

	if date, err := parseRelativeDate(input, today); err == nil {
		return date, nil
	}

	return models.Date{}, fmt.Errorf("invalid date format. Use: today, yesterday, yyyy-mm-dd, dd/mm/yyyy, or X days ago")
}

// buildDate validates the parts and rejects dates like 31/02/2024
func buildDate(yearStr, monthStr, dayStr string) (models.Date, error) {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	if day < 1 || day > 31 {
		return models.Date{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return models.Date{}, fmt.Errorf("month must be between 1 and 12")
	}
	if year < 1970 || year > 2100 {
		return models.Date{}, fmt.Errorf("year must be between 1970 and 2100")
	}

	date := models.NewDate(year, time.Month(month), day)

	// Check if date is valid (handles leap years, etc.)
	if date.Day != day || date.Month != time.Month(month) || date.Year != year {
		return models.Date{}, fmt.Errorf("invalid date")
	}
	return date, nil
}

// parseRelativeDate parses "3 days ago", "2 weeks ago", "5d", "1w"
func parseRelativeDate(input string, today models.Date) (models.Date, error) {
	matches := agoRegex.FindStringSubmatch(input)
	if matches == nil {
		return models.Date{}, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "d", "day", "days":
		if amount > 3660 {
			return models.Date{}, fmt.Errorf("days must be at most 3660")
		}
		return today.AddDays(-amount), nil
	default:
		if amount > 520 {
			return models.Date{}, fmt.Errorf("weeks must be at most 520")
		}
		return today.AddDays(-amount * 7), nil
	}
}

// FormatStudyDate formats a study date relative to today for display
func FormatStudyDate(date, today models.Date) string {
	if date.IsZero() {
		return ""
	}

	daysDiff := int(today.Time().Sub(date.Time()).Hours() / 24)
	dateStr := date.Time().Format("Mon 02/01/2006")

	switch {
	case daysDiff == 0:
		return "Today (" + dateStr + ")"
	case daysDiff == 1:
		return "Yesterday (" + dateStr + ")"
	case daysDiff > 1 && daysDiff <= 7:
		return fmt.Sprintf("%s (%d days ago)", dateStr, daysDiff)
	case daysDiff < 0:
		return dateStr + " (upcoming)"
	default:
		return dateStr
	}
}
