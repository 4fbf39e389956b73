package services

import (
	"errors"
	"testing"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

func TestExportOnlyOwnAssignments(t *testing.T) {
	store := &fakeStore{assignments: []model.Assignment{
		{ID: "a1", Title: "Mine", Subject: "Math", TeacherEmail: alice.Email},
		{ID: "a2", Title: "Theirs", Subject: "Math", TeacherEmail: bob.Email},
	}}
	svc := NewExportService(store)

	doc, err := svc.Export(alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ExportedBy != alice.Email {
		t.Errorf("unexpected exporter %q", doc.ExportedBy)
	}
	if len(doc.Assignments) != 1 || doc.Assignments[0].ID != "a1" {
		t.Fatalf("expected only alice's record, got %v", len(doc.Assignments))
	}
}

func TestImportForcesOwnershipAndFreshIDs(t *testing.T) {
	store := &fakeStore{}
	svc := NewExportService(store)

	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	result, err := svc.Import(alice, []model.Assignment{
		{ID: "old-1", Title: "Imported", Subject: "Math", DueDate: due, TeacherEmail: bob.Email},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Imported != 1 || result.Skipped != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	saved := store.assignments[0]
	if saved.ID == "old-1" {
		t.Error("imported record must get a fresh id")
	}
	if saved.TeacherEmail != alice.Email {
		t.Errorf("ownership must be forced to the importer, got %q", saved.TeacherEmail)
	}
}

func TestImportRemapsSeriesLinks(t *testing.T) {
	store := &fakeStore{}
	svc := NewExportService(store)

	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Import(alice, []model.Assignment{
		{ID: "p", Title: "First", Subject: "Math", DueDate: due, ParentID: "p"},
		{ID: "c", Title: "Second", Subject: "Math", DueDate: due.AddDate(0, 0, 1), ParentID: "p"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, second := store.assignments[0], store.assignments[1]
	if first.ParentID != first.ID {
		t.Error("self-referencing parent must follow the remapped id")
	}
	if second.ParentID != first.ID {
		t.Errorf("series link broken: %q vs %q", second.ParentID, first.ID)
	}
}

func TestImportSkipsUnusableRecords(t *testing.T) {
	store := &fakeStore{}
	svc := NewExportService(store)

	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	result, err := svc.Import(alice, []model.Assignment{
		{Title: "", Subject: "Math", DueDate: due},
		{Title: "Good", Subject: "Math", DueDate: due},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Imported != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestImportRejectsEmptyDocument(t *testing.T) {
	svc := NewExportService(&fakeStore{})

	var vErr *ValidationError
	if _, err := svc.Import(alice, nil); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
