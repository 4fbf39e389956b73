package model

import (
	"time"
)

// Priority represents how urgent an assignment is
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priority levels
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// RecurrenceType represents the repetition pattern of an assignment
type RecurrenceType string

const (
	RecurrenceNone   RecurrenceType = "none"
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceWeekly RecurrenceType = "weekly"
)

// Recurrence describes how a recurring assignment repeats.
// DaysOfWeek uses 0=Sunday .. 6=Saturday.
type Recurrence struct {
	Type       RecurrenceType `json:"type"`
	Interval   int            `json:"interval"`
	DaysOfWeek []int          `json:"days_of_week"`
}

// Assignment represents one homework task with scheduling, ownership and
// sub-entities. The full set of assignments is persisted as a single
// collection; see database.Storage.
type Assignment struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Tags        []string `json:"tags"`

	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Ownership is stamped from the authenticated identity at creation and
	// never changed by later update payloads.
	TeacherEmail string `json:"teacher_email"`
	TeacherName  string `json:"teacher_name"`

	YearGroup string `json:"year_group,omitempty"`
	ClassName string `json:"class_name,omitempty"`

	Completed bool `json:"completed"`

	IsRecurring    bool       `json:"is_recurring"`
	Recurrence     Recurrence `json:"recurrence"`
	NextOccurrence *time.Time `json:"next_occurrence,omitempty"`
	// ParentID is the id of the first occurrence of a recurring series.
	// Every occurrence of the same series shares it; non-recurring
	// assignments leave it empty.
	ParentID string `json:"parent_id,omitempty"`

	Comments    []Comment    `json:"comments"`
	Attachments []Attachment `json:"attachments"`
}

// Comment is a remark left on an assignment. Comments are append-only:
// once created they cannot be edited or removed through the API.
type Comment struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Attachment is the metadata entry for a file stored in external object
// storage. Path is the storage key; the engine never touches the bytes.
type Attachment struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// HasTag reports whether the assignment carries any of the given tags
func (a *Assignment) HasTag(tags ...string) bool {
	for _, want := range tags {
		for _, got := range a.Tags {
			if got == want {
				return true
			}
		}
	}
	return false
}

// SeriesKey returns the identifier grouping a recurring series together.
// The first occurrence stores its own id as the series key.
func (a *Assignment) SeriesKey() string {
	if a.ParentID != "" {
		return a.ParentID
	}
	return a.ID
}
