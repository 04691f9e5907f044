package models

import (
	"time"
)

// TimeUnit is the unit a session duration was entered in
type TimeUnit string

const (
	UnitMinutes TimeUnit = "minutes"
	UnitHours   TimeUnit = "hours"
)

// Valid reports whether u is a known unit
func (u TimeUnit) Valid() bool {
	return u == UnitMinutes || u == UnitHours
}

// StudySession is one logged study event. Sessions are never edited in place;
// removal replaces the whole collection.
type StudySession struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Duration  int       `json:"duration"`
	TimeUnit  TimeUnit  `json:"timeUnit"`
	Date      Date      `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"timestamp"`
}
