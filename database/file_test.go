package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "assignments.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return store
}

func TestFileStoreStartsEmpty(t *testing.T) {
	store := newTestFileStore(t)

	assignments, err := store.LoadAssignments()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assignments) != 0 {
		t.Fatalf("expected empty set, got %d records", len(assignments))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	due := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	in := []model.Assignment{{
		ID:           "a1",
		Title:        "Worksheet",
		Subject:      "Math",
		Priority:     model.PriorityHigh,
		Tags:         []string{"homework"},
		DueDate:      due,
		CreatedAt:    due.AddDate(0, 0, -7),
		UpdatedAt:    due.AddDate(0, 0, -7),
		TeacherEmail: "alice@school.test",
	}}

	if err := store.SaveAssignments(in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := store.LoadAssignments()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	got := out[0]
	if got.ID != "a1" || got.Title != "Worksheet" || !got.DueDate.Equal(due) {
		t.Errorf("record mangled in round trip: %+v", got)
	}
}

func TestFileStoreSavesAssignmentsAndTemplatesIndependently(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.SaveAssignments([]model.Assignment{{ID: "a1", Title: "T", Subject: "S"}}); err != nil {
		t.Fatalf("save assignments failed: %v", err)
	}
	if err := store.SaveTemplates([]model.Template{{ID: "t1", Title: "Tmpl", Subject: "S"}}); err != nil {
		t.Fatalf("save templates failed: %v", err)
	}

	assignments, _ := store.LoadAssignments()
	templates, _ := store.LoadTemplates()
	if len(assignments) != 1 || len(templates) != 1 {
		t.Fatalf("one save must not clobber the other: %d/%d", len(assignments), len(templates))
	}
}

func TestFileStoreNormalizesOnLoad(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.SaveAssignments([]model.Assignment{{ID: "a1", Priority: "bogus"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := store.LoadAssignments()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if out[0].Priority != model.PriorityMedium {
		t.Errorf("expected normalized priority, got %q", out[0].Priority)
	}
	if out[0].Tags == nil {
		t.Error("expected initialized tags")
	}
}

func TestFileStoreToleratesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignments.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("init failed on empty file: %v", err)
	}

	assignments, err := store.LoadAssignments()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(assignments) != 0 {
		t.Fatalf("expected empty set, got %d", len(assignments))
	}
}

func TestFileStoreInitRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignments.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	if err := store.Init(); err == nil {
		t.Fatal("expected init to fail on a corrupt document")
	}
}
