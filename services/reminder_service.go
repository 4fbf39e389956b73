package services

import (
	"sort"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// ReminderService decides which assignments qualify for a due-date
// reminder. The actual email delivery happens elsewhere; this service
// only selects and groups records.
type ReminderService struct {
	store database.Storage
}

// NewReminderService creates a new reminder service
func NewReminderService(store database.Storage) *ReminderService {
	return &ReminderService{store: store}
}

// DueSoon returns the incomplete assignments due within [now, now+window],
// grouped per teacher email and ordered by due date within each group.
func DueSoon(assignments []model.Assignment, now time.Time, window time.Duration) map[string][]model.Assignment {
	deadline := now.Add(window)

	byTeacher := map[string][]model.Assignment{}
	for _, a := range assignments {
		if a.Completed {
			continue
		}
		if a.DueDate.Before(now) || a.DueDate.After(deadline) {
			continue
		}
		byTeacher[a.TeacherEmail] = append(byTeacher[a.TeacherEmail], a)
	}

	for email := range byTeacher {
		group := byTeacher[email]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].DueDate.Before(group[j].DueDate)
		})
		byTeacher[email] = group
	}
	return byTeacher
}

// Upcoming loads the record set and selects the reminder groups
func (svc *ReminderService) Upcoming(window time.Duration) (map[string][]model.Assignment, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return DueSoon(assignments, time.Now().UTC(), window), nil
}
