package services

import (
	"testing"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

func recurringBase(due time.Time, policy model.Recurrence) model.Assignment {
	return model.Assignment{
		ID:           "base-id",
		Title:        "Spelling practice",
		Subject:      "English",
		Priority:     model.PriorityMedium,
		Tags:         []string{"weekly"},
		DueDate:      due,
		TeacherEmail: "alice@school.test",
		IsRecurring:  true,
		Recurrence:   policy,
	}
}

func TestExpandRecurrenceDailyInterval(t *testing.T) {
	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	policy := model.Recurrence{Type: model.RecurrenceDaily, Interval: 2}

	series := ExpandRecurrence(recurringBase(due, policy), policy)
	if len(series) != 4 {
		t.Fatalf("expected 4 occurrences, got %d", len(series))
	}

	wantDays := []int{1, 3, 5, 7}
	for i, occ := range series {
		if occ.DueDate.Day() != wantDays[i] {
			t.Errorf("occurrence %d: expected day %d, got %d", i, wantDays[i], occ.DueDate.Day())
		}
		if occ.ParentID != "base-id" {
			t.Errorf("occurrence %d: expected parent id base-id, got %q", i, occ.ParentID)
		}
	}

	if series[0].ID != "base-id" {
		t.Errorf("first occurrence must keep the base id, got %q", series[0].ID)
	}

	// Generated ids must be fresh and unique
	seen := map[string]bool{}
	for _, occ := range series {
		if seen[occ.ID] {
			t.Fatalf("duplicate occurrence id %q", occ.ID)
		}
		seen[occ.ID] = true
	}
}

func TestExpandRecurrenceNextOccurrenceOnlyOnFirst(t *testing.T) {
	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	policy := model.Recurrence{Type: model.RecurrenceDaily, Interval: 1}

	series := ExpandRecurrence(recurringBase(due, policy), policy)

	if series[0].NextOccurrence == nil {
		t.Fatal("first occurrence must carry NextOccurrence")
	}
	if !series[0].NextOccurrence.Equal(series[1].DueDate) {
		t.Errorf("NextOccurrence = %v, want %v", series[0].NextOccurrence, series[1].DueDate)
	}
	for i := 1; i < len(series); i++ {
		if series[i].NextOccurrence != nil {
			t.Errorf("occurrence %d must not carry NextOccurrence", i)
		}
	}
}

func TestExpandRecurrenceWeeklyWithDaysOfWeek(t *testing.T) {
	// Monday 2024-01-01; Mondays and Thursdays
	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	policy := model.Recurrence{
		Type:       model.RecurrenceWeekly,
		Interval:   1,
		DaysOfWeek: []int{1, 4},
	}

	series := ExpandRecurrence(recurringBase(due, policy), policy)

	// Mon 1st, Thu 4th, Mon 8th, Thu 11th
	wantDays := []int{1, 4, 8, 11}
	for i, occ := range series {
		if occ.DueDate.Day() != wantDays[i] {
			t.Errorf("occurrence %d: expected day %d, got %d", i, wantDays[i], occ.DueDate.Day())
		}
	}
}

func TestExpandRecurrenceWeeklyDaysOfWeekIgnoresInterval(t *testing.T) {
	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	policy := model.Recurrence{
		Type:       model.RecurrenceWeekly,
		Interval:   3,
		DaysOfWeek: []int{1},
	}

	series := ExpandRecurrence(recurringBase(due, policy), policy)

	// Every Monday regardless of the 3-week interval
	wantDays := []int{1, 8, 15, 22}
	for i, occ := range series {
		if occ.DueDate.Day() != wantDays[i] {
			t.Errorf("occurrence %d: expected day %d, got %d", i, wantDays[i], occ.DueDate.Day())
		}
	}
}

func TestExpandRecurrenceWeeklyWithoutDaysOfWeek(t *testing.T) {
	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	policy := model.Recurrence{Type: model.RecurrenceWeekly, Interval: 2}

	series := ExpandRecurrence(recurringBase(due, policy), policy)

	wantDays := []int{1, 15, 29, 12}
	for i, occ := range series {
		if occ.DueDate.Day() != wantDays[i] {
			t.Errorf("occurrence %d: expected day %d, got %d", i, wantDays[i], occ.DueDate.Day())
		}
	}
}

func TestExpandRecurrenceNonRecurringType(t *testing.T) {
	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	policy := model.Recurrence{Type: model.RecurrenceNone}

	series := ExpandRecurrence(recurringBase(due, policy), policy)
	if len(series) != 1 {
		t.Fatalf("expected single occurrence, got %d", len(series))
	}
	if series[0].NextOccurrence != nil {
		t.Error("non-recurring assignment must not carry NextOccurrence")
	}
}

func TestExpandRecurrenceCopiesDoNotAliasSlices(t *testing.T) {
	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	policy := model.Recurrence{Type: model.RecurrenceDaily, Interval: 1}

	series := ExpandRecurrence(recurringBase(due, policy), policy)

	series[1].Tags[0] = "changed"
	if series[2].Tags[0] == "changed" {
		t.Fatal("occurrences must not share tag slices")
	}
}
