package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// AssignmentService owns every mutation of the assignment set. Each
// operation is a full read-modify-write cycle against the storage port.
type AssignmentService struct {
	store database.Storage
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(store database.Storage) *AssignmentService {
	return &AssignmentService{store: store}
}

// CreateAssignmentInput carries the typed payload for a new assignment
type CreateAssignmentInput struct {
	Title       string
	Subject     string
	Description string
	Priority    model.Priority
	Tags        []string
	DueDate     time.Time
	YearGroup   string
	ClassName   string
	IsRecurring bool
	Recurrence  model.Recurrence
}

// UpdateAssignmentInput is a partial payload merged over an existing
// assignment. Nil fields are left untouched. There is deliberately no
// ID field: a client attempt to change the id is ignored, not an error.
type UpdateAssignmentInput struct {
	Title       *string
	Subject     *string
	Description *string
	Priority    *model.Priority
	Tags        *[]string
	DueDate     *time.Time
	YearGroup   *string
	ClassName   *string
	Completed   *bool
	IsRecurring *bool
	Recurrence  *model.Recurrence
}

// Create validates the input, stamps identity ownership and persists
// either the single record or, for recurring assignments, the whole
// generated series. The primary (first) record is returned.
func (svc *AssignmentService) Create(identity model.Identity, in CreateAssignmentInput) (model.Assignment, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(in.Subject) == "" {
		fields["subject"] = "subject is required"
	}
	if in.DueDate.IsZero() {
		fields["due_date"] = "due date is required"
	}
	if len(fields) > 0 {
		return model.Assignment{}, NewValidationError(fields)
	}

	now := time.Now().UTC()

	assignment := model.Assignment{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Subject:      in.Subject,
		Description:  in.Description,
		Priority:     in.Priority,
		Tags:         in.Tags,
		DueDate:      in.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
		TeacherEmail: identity.Email,
		TeacherName:  identity.Name,
		YearGroup:    in.YearGroup,
		ClassName:    in.ClassName,
		IsRecurring:  in.IsRecurring,
		Recurrence:   in.Recurrence,
		Comments:     []model.Comment{},
		Attachments:  []model.Attachment{},
	}
	if !model.ValidPriority(assignment.Priority) {
		assignment.Priority = model.PriorityMedium
	}
	if assignment.Tags == nil {
		assignment.Tags = []string{}
	}
	if assignment.Recurrence.Type == "" {
		assignment.Recurrence.Type = model.RecurrenceNone
	}
	if assignment.Recurrence.Interval < 1 {
		assignment.Recurrence.Interval = 1
	}

	created := []model.Assignment{assignment}
	if assignment.IsRecurring {
		created = ExpandRecurrence(assignment, assignment.Recurrence)
	}

	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return model.Assignment{}, &PersistenceError{Err: err}
	}
	assignments = append(assignments, created...)

	if err := svc.store.SaveAssignments(assignments); err != nil {
		return model.Assignment{}, &PersistenceError{Err: err}
	}
	return created[0], nil
}

// Get returns one assignment by id
func (svc *AssignmentService) Get(id string) (model.Assignment, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return model.Assignment{}, &PersistenceError{Err: err}
	}
	for _, a := range assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Assignment{}, ErrNotFound
}

// List loads the set and runs it through the query engine
func (svc *AssignmentService) List(f Filters, page, limit int) ([]model.Assignment, Pagination, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return nil, Pagination{}, &PersistenceError{Err: err}
	}
	items, pagination := QueryAssignments(assignments, f, page, limit)
	return items, pagination, nil
}

// Update merges the partial payload over the target record. Ownership
// fields never change; updated_at always refreshes.
func (svc *AssignmentService) Update(identity model.Identity, id string, patch UpdateAssignmentInput) (model.Assignment, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return model.Assignment{}, &PersistenceError{Err: err}
	}

	idx := indexByID(assignments, id)
	if idx < 0 {
		return model.Assignment{}, ErrNotFound
	}
	if !CanModify(identity, assignments[idx]) {
		return model.Assignment{}, ErrPermissionDenied
	}

	assignments[idx] = applyPatch(assignments[idx], patch, time.Now().UTC())

	if err := svc.store.SaveAssignments(assignments); err != nil {
		return model.Assignment{}, &PersistenceError{Err: err}
	}
	return assignments[idx], nil
}

// Delete removes the target. When the target belongs to a recurring
// series the whole series goes with it, not just the one occurrence.
func (svc *AssignmentService) Delete(identity model.Identity, id string) error {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return &PersistenceError{Err: err}
	}

	idx := indexByID(assignments, id)
	if idx < 0 {
		return ErrNotFound
	}
	target := assignments[idx]
	if !CanModify(identity, target) {
		return ErrPermissionDenied
	}

	remaining := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.ID == target.ID {
			continue
		}
		if target.ParentID != "" && a.ParentID == target.ParentID {
			continue
		}
		remaining = append(remaining, a)
	}

	if err := svc.store.SaveAssignments(remaining); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

// ToggleComplete flips the completion flag
func (svc *AssignmentService) ToggleComplete(identity model.Identity, id string) (model.Assignment, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return model.Assignment{}, &PersistenceError{Err: err}
	}

	idx := indexByID(assignments, id)
	if idx < 0 {
		return model.Assignment{}, ErrNotFound
	}
	if !CanModify(identity, assignments[idx]) {
		return model.Assignment{}, ErrPermissionDenied
	}

	assignments[idx].Completed = !assignments[idx].Completed
	assignments[idx].UpdatedAt = time.Now().UTC()

	if err := svc.store.SaveAssignments(assignments); err != nil {
		return model.Assignment{}, &PersistenceError{Err: err}
	}
	return assignments[idx], nil
}

// BulkDelete removes every listed record the caller owns and reports
// the count. Records the caller does not own are skipped silently; the
// batch never fails on ownership.
func (svc *AssignmentService) BulkDelete(identity model.Identity, ids []string) (int, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}

	wanted := toIDSet(ids)
	remaining := make([]model.Assignment, 0, len(assignments))
	removed := 0
	for _, a := range assignments {
		if wanted[a.ID] && CanModify(identity, a) {
			removed++
			continue
		}
		remaining = append(remaining, a)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := svc.store.SaveAssignments(remaining); err != nil {
		return 0, &PersistenceError{Err: err}
	}
	return removed, nil
}

// BulkUpdate applies the same merge as Update to every listed record
// the caller owns. Non-owned records are skipped silently; a batch that
// matches nothing reports ErrNotFound.
func (svc *AssignmentService) BulkUpdate(identity model.Identity, ids []string, patch UpdateAssignmentInput) (int, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}

	wanted := toIDSet(ids)
	now := time.Now().UTC()
	updated := 0
	for i, a := range assignments {
		if wanted[a.ID] && CanModify(identity, a) {
			assignments[i] = applyPatch(a, patch, now)
			updated++
		}
	}

	if updated == 0 {
		return 0, ErrNotFound
	}
	if err := svc.store.SaveAssignments(assignments); err != nil {
		return 0, &PersistenceError{Err: err}
	}
	return updated, nil
}

// applyPatch merges non-nil fields over the record and refreshes the
// update timestamp. Ownership fields are not part of the patch shape.
func applyPatch(a model.Assignment, patch UpdateAssignmentInput, now time.Time) model.Assignment {
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Subject != nil {
		a.Subject = *patch.Subject
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Priority != nil && model.ValidPriority(*patch.Priority) {
		a.Priority = *patch.Priority
	}
	if patch.Tags != nil {
		a.Tags = append([]string{}, (*patch.Tags)...)
	}
	if patch.DueDate != nil {
		a.DueDate = *patch.DueDate
	}
	if patch.YearGroup != nil {
		a.YearGroup = *patch.YearGroup
	}
	if patch.ClassName != nil {
		a.ClassName = *patch.ClassName
	}
	if patch.Completed != nil {
		a.Completed = *patch.Completed
	}
	if patch.IsRecurring != nil {
		a.IsRecurring = *patch.IsRecurring
	}
	if patch.Recurrence != nil {
		a.Recurrence = *patch.Recurrence
		if a.Recurrence.Interval < 1 {
			a.Recurrence.Interval = 1
		}
	}
	a.UpdatedAt = now
	return a
}

func indexByID(assignments []model.Assignment, id string) int {
	for i, a := range assignments {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func toIDSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
