package services

import (
	"sort"
	"strings"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

const defaultPageLimit = 50

// Filters holds the optional, conjunctive assignment filters. Zero
// values mean "not set".
type Filters struct {
	// Search does a case-insensitive substring match against title,
	// description or subject.
	Search string
	// Subject, Priority, YearGroup and TeacherEmail are
	// case-insensitive exact matches.
	Subject      string
	Priority     string
	YearGroup    string
	TeacherEmail string
	// Status: "completed" selects completed assignments, any other
	// non-empty value selects pending ones.
	Status string
	// Tags matches assignments whose tag set intersects the given set.
	Tags []string
	// From/To is an inclusive range on due date. To is widened to the
	// end of its day.
	From *time.Time
	To   *time.Time
}

// Pagination describes the slice of the filtered result being returned
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// QueryAssignments applies the filters, sorts ascending by due date
// (stable for ties) and paginates. Pages are 1-indexed; a page beyond
// range yields an empty item list with correct metadata.
func QueryAssignments(assignments []model.Assignment, f Filters, page, limit int) ([]model.Assignment, Pagination) {
	filtered := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if matchesFilters(a, f) {
			filtered = append(filtered, a)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].DueDate.Before(filtered[j].DueDate)
	})

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	pagination := Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1 && total > 0,
	}

	return filtered[start:end], pagination
}

func matchesFilters(a model.Assignment, f Filters) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Description), needle) &&
			!strings.Contains(strings.ToLower(a.Subject), needle) {
			return false
		}
	}
	if f.Subject != "" && !strings.EqualFold(a.Subject, f.Subject) {
		return false
	}
	if f.Priority != "" && !strings.EqualFold(string(a.Priority), f.Priority) {
		return false
	}
	if f.YearGroup != "" && !strings.EqualFold(a.YearGroup, f.YearGroup) {
		return false
	}
	if f.TeacherEmail != "" && !strings.EqualFold(a.TeacherEmail, f.TeacherEmail) {
		return false
	}
	if f.Status != "" {
		wantCompleted := strings.EqualFold(f.Status, "completed")
		if a.Completed != wantCompleted {
			return false
		}
	}
	if len(f.Tags) > 0 && !a.HasTag(f.Tags...) {
		return false
	}
	if f.From != nil && a.DueDate.Before(*f.From) {
		return false
	}
	if f.To != nil && a.DueDate.After(endOfDay(*f.To)) {
		return false
	}
	return true
}

// endOfDay widens a date to 23:59:59.999 in its own location
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}
