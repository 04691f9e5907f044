package duration

import (
	"fmt"
	"strings"

	"github.com/balkashynov/studylog/internal/models"
)

// ToMinutes converts a duration entered in unit into whole minutes
func ToMinutes(duration int, unit models.TimeUnit) int {
	if unit == models.UnitHours {
		return duration * 60
	}
	return duration
}

// FormatMinutes renders minutes as "45 min", "2h" or "1h 30m"
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

// ParseUnit accepts the usual spellings of minutes and hours
func ParseUnit(s string) (models.TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "min", "mins", "minute", "minutes":
		return models.UnitMinutes, nil
	case "h", "hr", "hrs", "hour", "hours":
		return models.UnitHours, nil
	default:
		return "", fmt.Errorf("unknown time unit %q (use minutes or hours)", s)
	}
}
