package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/balkashynov/studylog/internal/models"
)

var (
	d1 = models.NewDate(2024, time.January, 1)
	d2 = models.NewDate(2024, time.January, 2)
)

func testSessions() []models.StudySession {
	return []models.StudySession{
		{ID: "3", Subject: "Grammar", Duration: 15, TimeUnit: models.UnitMinutes, Date: d2},
		{ID: "2", Subject: "Physics", Duration: 1, TimeUnit: models.UnitHours, Date: d2},
		{ID: "1", Subject: "Math", Duration: 30, TimeUnit: models.UnitMinutes, Date: d1},
	}
}

func ids(sessions []models.StudySession) []string {
	out := []string{}
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	math := models.StudySession{ID: "m", Subject: "Math", Date: d1}
	physics := models.StudySession{ID: "p", Subject: "Physics", Date: d2}
	sessions := []models.StudySession{math, physics}

	got := Apply(sessions, Criteria{Subject: "ma"})
	if !reflect.DeepEqual(got, []models.StudySession{math}) {
		t.Fatalf("subject filter: got %+v", got)
	}

	date := d2
	got = Apply(sessions, Criteria{Date: &date})
	if !reflect.DeepEqual(got, []models.StudySession{physics}) {
		t.Fatalf("date filter: got %+v", got)
	}
}

func TestApplyCombinations(t *testing.T) {
	date1, date2 := d1, d2

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"zero criteria keeps all in order", Criteria{}, []string{"3", "2", "1"}},
		{"whitespace subject is literal", Criteria{Subject: "  "}, []string{}},
		{"case insensitive", Criteria{Subject: "PHYS"}, []string{"2"}},
		{"substring in several", Criteria{Subject: "a"}, []string{"3", "1"}},
		{"date only", Criteria{Date: &date2}, []string{"3", "2"}},
		{"subject and date", Criteria{Subject: "a", Date: &date2}, []string{"3"}},
		{"no match", Criteria{Subject: "chem"}, []string{}},
		{"subject matches other day", Criteria{Subject: "math", Date: &date2}, []string{}},
		{"date1", Criteria{Date: &date1}, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(testSessions(), tt.criteria))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	sessions := testSessions()
	before := testSessions()
	Apply(sessions, Criteria{Subject: "math"})
	if !reflect.DeepEqual(sessions, before) {
		t.Fatalf("input changed")
	}
}

func TestCriteriaIsZero(t *testing.T) {
	date := d1
	if !(Criteria{}).IsZero() {
		t.Errorf("empty criteria should be zero")
	}
	if (Criteria{Subject: "x"}).IsZero() || (Criteria{Subject: " "}).IsZero() || (Criteria{Date: &date}).IsZero() {
		t.Errorf("non-empty criteria reported as zero")
	}
}

func TestDistinctSubjects(t *testing.T) {
	sessions := []models.StudySession{
		{Subject: "Physics"},
		{Subject: "math"},
		{Subject: "Math"},
		{Subject: "Physics"},
		{Subject: "Art"},
	}

	got := DistinctSubjects(sessions)
	want := []string{"Art", "Math", "Physics", "math"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DistinctSubjects() = %v, want %v", got, want)
	}

	if got := DistinctSubjects(nil); len(got) != 0 {
		t.Fatalf("expected no subjects, got %v", got)
	}
}
