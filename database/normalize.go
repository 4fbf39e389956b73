package database

import (
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// NormalizeAssignments fills missing fields with defaults so that older
// or externally-imported records come out of storage well-formed. It is
// applied once, at the load boundary, by every backend; the service
// layer can rely on fully-typed values and never falls back per field.
func NormalizeAssignments(assignments []model.Assignment) []model.Assignment {
	out := make([]model.Assignment, len(assignments))
	for i, a := range assignments {
		out[i] = NormalizeAssignment(a)
	}
	return out
}

// NormalizeAssignment returns a copy of a with defaults applied
func NormalizeAssignment(a model.Assignment) model.Assignment {
	if !model.ValidPriority(a.Priority) {
		a.Priority = model.PriorityMedium
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if a.Comments == nil {
		a.Comments = []model.Comment{}
	}
	if a.Attachments == nil {
		a.Attachments = []model.Attachment{}
	}

	switch a.Recurrence.Type {
	case model.RecurrenceDaily, model.RecurrenceWeekly:
	default:
		a.Recurrence.Type = model.RecurrenceNone
	}
	if a.Recurrence.Interval < 1 {
		a.Recurrence.Interval = 1
	}
	a.Recurrence.DaysOfWeek = clampDaysOfWeek(a.Recurrence.DaysOfWeek)

	if a.CreatedAt.IsZero() {
		a.CreatedAt = a.UpdatedAt
	}
	if a.UpdatedAt.Before(a.CreatedAt) {
		a.UpdatedAt = a.CreatedAt
	}

	return a
}

// NormalizeTemplates fills missing fields on stored templates
func NormalizeTemplates(templates []model.Template) []model.Template {
	out := make([]model.Template, len(templates))
	for i, t := range templates {
		if t.Tags == nil {
			t.Tags = []string{}
		}
		if t.UpdatedAt.Before(t.CreatedAt) {
			t.UpdatedAt = t.CreatedAt
		}
		out[i] = t
	}
	return out
}

// clampDaysOfWeek drops entries outside 0..6, preserving order
func clampDaysOfWeek(days []int) []int {
	out := []int{}
	for _, d := range days {
		if d >= 0 && d <= 6 {
			out = append(out, d)
		}
	}
	return out
}
