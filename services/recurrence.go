package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

// A recurring series always consists of the base plus three generated
// occurrences.
const seriesLength = 4

// ExpandRecurrence produces the ordered occurrence series for a
// recurring assignment. Every occurrence is a full copy of base except
// for its id, due date, parent id and next-occurrence marker; all
// members share ParentID equal to the base's id, and only the first
// member carries NextOccurrence (the second member's due date).
//
// Types other than daily/weekly never expand: the base comes back alone,
// with IsRecurring recorded as given.
//
// Known quirk kept on purpose: a weekly policy with an explicit
// DaysOfWeek set ignores Interval entirely, so multi-week intervals
// combined with explicit weekdays collapse to every-week behavior.
func ExpandRecurrence(base model.Assignment, policy model.Recurrence) []model.Assignment {
	if policy.Type != model.RecurrenceDaily && policy.Type != model.RecurrenceWeekly {
		return []model.Assignment{base}
	}

	if policy.Interval < 1 {
		policy.Interval = 1
	}
	policy.DaysOfWeek = validDaysOfWeek(policy.DaysOfWeek)

	base.ParentID = base.ID
	base.NextOccurrence = nil

	series := make([]model.Assignment, 0, seriesLength)
	series = append(series, base)

	due := base.DueDate
	for i := 1; i < seriesLength; i++ {
		due = nextDueDate(due, policy)

		occ := cloneAssignment(base)
		occ.ID = uuid.New().String()
		occ.DueDate = due
		occ.ParentID = base.ID
		occ.NextOccurrence = nil
		series = append(series, occ)
	}

	next := series[1].DueDate
	series[0].NextOccurrence = &next

	return series
}

// nextDueDate advances one step from the previous occurrence's due date
func nextDueDate(prev time.Time, policy model.Recurrence) time.Time {
	switch policy.Type {
	case model.RecurrenceDaily:
		return prev.AddDate(0, 0, policy.Interval)
	case model.RecurrenceWeekly:
		if len(policy.DaysOfWeek) > 0 {
			return prev.AddDate(0, 0, daysUntilNextWeekday(prev, policy.DaysOfWeek))
		}
		return prev.AddDate(0, 0, 7*policy.Interval)
	}
	return prev
}

// daysUntilNextWeekday finds the smallest weekday in the set strictly
// after the current weekday, wrapping to the following week when none
// remains.
func daysUntilNextWeekday(from time.Time, daysOfWeek []int) int {
	current := int(from.Weekday())

	next := -1
	smallest := -1
	for _, d := range daysOfWeek {
		if smallest == -1 || d < smallest {
			smallest = d
		}
		if d > current && (next == -1 || d < next) {
			next = d
		}
	}

	if next != -1 {
		return next - current
	}
	return smallest + 7 - current
}

// validDaysOfWeek silently drops entries outside 0..6
func validDaysOfWeek(days []int) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			out = append(out, d)
		}
	}
	return out
}

// cloneAssignment copies a together with its slices so that series
// members never alias each other's tags or sub-entities
func cloneAssignment(a model.Assignment) model.Assignment {
	out := a
	out.Tags = append([]string{}, a.Tags...)
	out.Comments = append([]model.Comment{}, a.Comments...)
	out.Attachments = append([]model.Attachment{}, a.Attachments...)
	out.Recurrence.DaysOfWeek = append([]int{}, a.Recurrence.DaysOfWeek...)
	if a.NextOccurrence != nil {
		next := *a.NextOccurrence
		out.NextOccurrence = &next
	}
	return out
}
