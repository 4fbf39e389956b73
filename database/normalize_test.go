package database

import (
	"testing"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

func TestNormalizeAssignmentDefaults(t *testing.T) {
	got := NormalizeAssignment(model.Assignment{
		ID:       "a1",
		Priority: "urgent",
	})

	if got.Priority != model.PriorityMedium {
		t.Errorf("unknown priority must default to medium, got %q", got.Priority)
	}
	if got.Tags == nil || got.Comments == nil || got.Attachments == nil {
		t.Error("nil collections must come out empty, not nil")
	}
	if got.Recurrence.Type != model.RecurrenceNone {
		t.Errorf("missing recurrence type must default to none, got %q", got.Recurrence.Type)
	}
	if got.Recurrence.Interval != 1 {
		t.Errorf("expected interval 1, got %d", got.Recurrence.Interval)
	}
}

func TestNormalizeAssignmentClampsDaysOfWeek(t *testing.T) {
	got := NormalizeAssignment(model.Assignment{
		Recurrence: model.Recurrence{
			Type:       model.RecurrenceWeekly,
			Interval:   1,
			DaysOfWeek: []int{-1, 0, 3, 6, 7, 12},
		},
	})

	want := []int{0, 3, 6}
	if len(got.Recurrence.DaysOfWeek) != len(want) {
		t.Fatalf("expected %v, got %v", want, got.Recurrence.DaysOfWeek)
	}
	for i, d := range want {
		if got.Recurrence.DaysOfWeek[i] != d {
			t.Fatalf("expected %v, got %v", want, got.Recurrence.DaysOfWeek)
		}
	}
}

func TestNormalizeAssignmentTimestamps(t *testing.T) {
	updated := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	got := NormalizeAssignment(model.Assignment{UpdatedAt: updated})
	if !got.CreatedAt.Equal(updated) {
		t.Errorf("zero created_at must inherit updated_at, got %v", got.CreatedAt)
	}

	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	got = NormalizeAssignment(model.Assignment{CreatedAt: created, UpdatedAt: updated})
	if !got.UpdatedAt.Equal(created) {
		t.Errorf("updated_at before created_at must be lifted, got %v", got.UpdatedAt)
	}
}

func TestNormalizeAssignmentKeepsValidValues(t *testing.T) {
	in := model.Assignment{
		Priority: model.PriorityHigh,
		Tags:     []string{"keep"},
		Recurrence: model.Recurrence{
			Type:       model.RecurrenceDaily,
			Interval:   3,
			DaysOfWeek: []int{2},
		},
	}

	got := NormalizeAssignment(in)
	if got.Priority != model.PriorityHigh || got.Recurrence.Interval != 3 {
		t.Errorf("valid values must pass through unchanged: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "keep" {
		t.Errorf("tags must pass through unchanged: %v", got.Tags)
	}
}

func TestNormalizeTemplates(t *testing.T) {
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	got := NormalizeTemplates([]model.Template{
		{ID: "t1", CreatedAt: created, UpdatedAt: created.AddDate(0, 0, -1)},
	})

	if got[0].Tags == nil {
		t.Error("nil tags must come out empty")
	}
	if !got[0].UpdatedAt.Equal(created) {
		t.Errorf("updated_at must be lifted to created_at, got %v", got[0].UpdatedAt)
	}
}
