package services

import (
	"math"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// Subject bucket for assignments without a subject label
const uncategorizedSubject = "Uncategorized"

// DueBuckets splits incomplete assignments by proximity of their due
// date: already overdue, due within the next seven days, or later.
type DueBuckets struct {
	Overdue  int `json:"overdue"`
	ThisWeek int `json:"this_week"`
	Later    int `json:"later"`
}

// Stats is the read-only dashboard reduction over one teacher's records
type Stats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	CompletionRate int            `json:"completion_rate"`
	BySubject      map[string]int `json:"by_subject"`
	ByPriority     map[string]int `json:"by_priority"`
	ByDueDate      DueBuckets     `json:"by_due_date"`
}

// StatsService aggregates dashboard numbers scoped to one teacher
type StatsService struct {
	store database.Storage
}

// NewStatsService creates a new stats service
func NewStatsService(store database.Storage) *StatsService {
	return &StatsService{store: store}
}

// ForTeacher loads the set and reduces the teacher's own records
func (svc *StatsService) ForTeacher(teacherEmail string) (Stats, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return Stats{}, &PersistenceError{Err: err}
	}
	return ComputeStats(assignments, teacherEmail, time.Now().UTC()), nil
}

// ComputeStats reduces the teacher's assignments into counts by
// completion, subject, priority and due-date bucket. The due-date
// buckets consider incomplete assignments only.
func ComputeStats(assignments []model.Assignment, teacherEmail string, now time.Time) Stats {
	stats := Stats{
		BySubject: map[string]int{},
		ByPriority: map[string]int{
			string(model.PriorityHigh):   0,
			string(model.PriorityMedium): 0,
			string(model.PriorityLow):    0,
		},
	}

	weekAhead := now.Add(7 * 24 * time.Hour)

	for _, a := range assignments {
		if a.TeacherEmail != teacherEmail {
			continue
		}

		stats.Total++
		if a.Completed {
			stats.Completed++
		}

		subject := a.Subject
		if subject == "" {
			subject = uncategorizedSubject
		}
		stats.BySubject[subject]++

		if _, known := stats.ByPriority[string(a.Priority)]; known {
			stats.ByPriority[string(a.Priority)]++
		}

		if !a.Completed {
			switch {
			case a.DueDate.Before(now):
				stats.ByDueDate.Overdue++
			case a.DueDate.After(weekAhead):
				stats.ByDueDate.Later++
			default:
				stats.ByDueDate.ThisWeek++
			}
		}
	}

	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(100 * float64(stats.Completed) / float64(stats.Total)))
	}
	return stats
}
