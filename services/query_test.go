package services

import (
	"testing"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
}

func sampleAssignments() []model.Assignment {
	return []model.Assignment{
		{
			ID:           "a1",
			Title:        "Fractions worksheet",
			Subject:      "Math",
			Priority:     model.PriorityHigh,
			Tags:         []string{"homework", "numeracy"},
			DueDate:      day(10),
			TeacherEmail: "alice@school.test",
			YearGroup:    "Year 7",
		},
		{
			ID:           "a2",
			Title:        "Essay on Hamlet",
			Subject:      "English",
			Priority:     model.PriorityMedium,
			Tags:         []string{"essay"},
			DueDate:      day(5),
			TeacherEmail: "alice@school.test",
			YearGroup:    "Year 9",
			Completed:    true,
		},
		{
			ID:           "a3",
			Title:        "Algebra quiz prep",
			Subject:      "Math",
			Priority:     model.PriorityLow,
			Tags:         []string{"quiz", "homework"},
			DueDate:      day(8),
			TeacherEmail: "bob@school.test",
			YearGroup:    "Year 7",
		},
		{
			ID:           "a4",
			Title:        "Read chapter 4",
			Subject:      "History",
			Priority:     model.PriorityMedium,
			Tags:         []string{},
			DueDate:      day(20),
			TeacherEmail: "bob@school.test",
			YearGroup:    "Year 8",
		},
	}
}

func TestQueryAssignmentsSortsByDueDate(t *testing.T) {
	items, pagination := QueryAssignments(sampleAssignments(), Filters{}, 1, 50)

	if pagination.Total != 4 {
		t.Fatalf("expected total 4, got %d", pagination.Total)
	}
	want := []string{"a2", "a3", "a1", "a4"}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, items[i].ID)
		}
	}
}

func TestQueryAssignmentsFiltersAreConjunctive(t *testing.T) {
	filters := Filters{
		Subject:   "math",
		YearGroup: "year 7",
		Tags:      []string{"homework"},
		Status:    "pending",
	}

	items, _ := QueryAssignments(sampleAssignments(), filters, 1, 50)
	if len(items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(items))
	}
	for _, a := range items {
		if a.Subject != "Math" {
			t.Errorf("unexpected subject %q", a.Subject)
		}
	}
}

func TestQueryAssignmentsSearchMatchesDescription(t *testing.T) {
	assignments := sampleAssignments()
	assignments[3].Description = "Covers the French revolution"

	items, _ := QueryAssignments(assignments, Filters{Search: "REVOLUTION"}, 1, 50)
	if len(items) != 1 || items[0].ID != "a4" {
		t.Fatalf("expected only a4, got %v", ids(items))
	}
}

func TestQueryAssignmentsDateRangeInclusive(t *testing.T) {
	from := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	// a2 is due at noon on the 5th and a3 at noon on the 8th; both sit
	// inside the inclusive range even though To has zero clock time.
	items, _ := QueryAssignments(sampleAssignments(), Filters{From: &from, To: &to}, 1, 50)
	got := ids(items)
	if len(got) != 2 || got[0] != "a2" || got[1] != "a3" {
		t.Fatalf("expected [a2 a3], got %v", got)
	}
}

func TestQueryAssignmentsPagination(t *testing.T) {
	all := sampleAssignments()

	var collected []string
	for page := 1; ; page++ {
		items, pagination := QueryAssignments(all, Filters{}, page, 2)
		if pagination.Limit != 2 || pagination.TotalPages != 2 {
			t.Fatalf("page %d: unexpected pagination %+v", page, pagination)
		}
		collected = append(collected, ids(items)...)
		if !pagination.HasNext {
			break
		}
	}

	if len(collected) != 4 {
		t.Fatalf("reassembled %d items across pages, want 4", len(collected))
	}
}

func TestQueryAssignmentsPageBeyondRange(t *testing.T) {
	items, pagination := QueryAssignments(sampleAssignments(), Filters{}, 9, 2)
	if len(items) != 0 {
		t.Fatalf("expected empty page, got %v", ids(items))
	}
	if pagination.Total != 4 || pagination.HasNext {
		t.Fatalf("unexpected pagination %+v", pagination)
	}
}

func TestQueryAssignmentsStatusCompleted(t *testing.T) {
	items, _ := QueryAssignments(sampleAssignments(), Filters{Status: "completed"}, 1, 50)
	if len(items) != 1 || items[0].ID != "a2" {
		t.Fatalf("expected only a2, got %v", ids(items))
	}
}

func ids(assignments []model.Assignment) []string {
	out := make([]string, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.ID)
	}
	return out
}
