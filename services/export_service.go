package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// ExportService moves assignment records in and out of the engine as
// plain documents, for backup and for migrating between deployments.
type ExportService struct {
	store database.Storage
}

// NewExportService creates a new export service
func NewExportService(store database.Storage) *ExportService {
	return &ExportService{store: store}
}

// ExportDocument is the portable backup format
type ExportDocument struct {
	ExportedAt  time.Time          `json:"exported_at"`
	ExportedBy  string             `json:"exported_by"`
	Assignments []model.Assignment `json:"assignments"`
}

// ImportResult reports what an import actually did
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Export returns the caller's own assignments as a portable document
func (svc *ExportService) Export(identity model.Identity) (ExportDocument, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return ExportDocument{}, &PersistenceError{Err: err}
	}

	owned := make([]model.Assignment, 0)
	for _, a := range assignments {
		if a.TeacherEmail == identity.Email {
			owned = append(owned, a)
		}
	}

	return ExportDocument{
		ExportedAt:  time.Now().UTC(),
		ExportedBy:  identity.Email,
		Assignments: owned,
	}, nil
}

// Import merges external records into the set. Every imported record is
// normalized, gets a fresh id, and is owned by the caller regardless of
// what the document claims. Records without a title or subject are
// skipped rather than failing the whole import.
func (svc *ExportService) Import(identity model.Identity, incoming []model.Assignment) (ImportResult, error) {
	if len(incoming) == 0 {
		return ImportResult{}, NewValidationError(map[string]string{
			"assignments": "at least one assignment is required",
		})
	}

	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return ImportResult{}, &PersistenceError{Err: err}
	}

	incoming = database.NormalizeAssignments(incoming)

	// Old ids map to new ones so series links survive the import
	idMap := make(map[string]string, len(incoming))
	for _, a := range incoming {
		if a.ID != "" {
			idMap[a.ID] = uuid.New().String()
		}
	}

	result := ImportResult{}
	now := time.Now().UTC()
	for _, a := range incoming {
		if a.Title == "" || a.Subject == "" {
			result.Skipped++
			continue
		}

		if mapped, ok := idMap[a.ID]; ok {
			a.ID = mapped
		} else {
			a.ID = uuid.New().String()
		}
		if a.ParentID != "" {
			if mapped, ok := idMap[a.ParentID]; ok {
				a.ParentID = mapped
			} else {
				a.ParentID = ""
			}
		}

		a.TeacherEmail = identity.Email
		a.TeacherName = identity.Name
		a.CreatedAt = now
		a.UpdatedAt = now

		assignments = append(assignments, a)
		result.Imported++
	}

	if result.Imported == 0 {
		return result, NewValidationError(map[string]string{
			"assignments": "no importable assignments in document",
		})
	}

	if err := svc.store.SaveAssignments(assignments); err != nil {
		return ImportResult{}, &PersistenceError{Err: err}
	}
	return result, nil
}
