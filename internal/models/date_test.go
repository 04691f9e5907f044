package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.February, 28)

	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Errorf("leap day: got %s", got)
	}
	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Errorf("month rollover: got %s", got)
	}
	if got := NewDate(2024, time.January, 1).AddDays(-1).String(); got != "2023-12-31" {
		t.Errorf("year rollback: got %s", got)
	}
	if NewDate(2024, time.January, 3).Weekday() != time.Wednesday {
		t.Errorf("2024-01-03 should be a Wednesday")
	}
	if !d.Before(d.AddDays(1)) || d.Before(d) {
		t.Errorf("Before is not strict")
	}
}

func TestDateOfIgnoresClockTime(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2024, time.March, 5, 23, 59, 0, 0, loc)
	if got := DateOf(late); got != NewDate(2024, time.March, 5) {
		t.Fatalf("DateOf(%v) = %v", late, got)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.January, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal date: %v", err)
	}
	if string(data) != `"2024-01-01"` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2024-01-01T15:04:05Z"`), &back); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if back != d {
		t.Fatalf("got %v, want %v", back, d)
	}

	if err := json.Unmarshal([]byte(`"not a date"`), &back); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}
