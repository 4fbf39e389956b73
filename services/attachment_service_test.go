package services

import (
	"errors"
	"testing"
)

func sampleFile() FileRecord {
	return FileRecord{
		Filename: "essay.pdf",
		Path:     "attachments/essay-abc.pdf",
		MimeType: "application/pdf",
		Size:     1024,
	}
}

func TestAddAttachmentRecordsMetadata(t *testing.T) {
	store := storeWithAssignment("a1")
	svc := NewAttachmentService(store)

	attachment, orphaned, err := svc.Add(alice, "a1", sampleFile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orphaned) != 0 {
		t.Fatalf("successful add must not orphan keys, got %v", orphaned)
	}
	if attachment.UploadedBy != alice.Email {
		t.Errorf("uploader not stamped: %q", attachment.UploadedBy)
	}
	if len(store.assignments[0].Attachments) != 1 {
		t.Fatal("attachment metadata not persisted")
	}
}

func TestAddAttachmentToMissingAssignmentSignalsOrphan(t *testing.T) {
	svc := NewAttachmentService(storeWithAssignment("a1"))

	_, orphaned, err := svc.Add(alice, "missing", sampleFile())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(orphaned) != 1 || orphaned[0] != "attachments/essay-abc.pdf" {
		t.Fatalf("expected the stored key to be signalled as orphaned, got %v", orphaned)
	}
}

func TestAddAttachmentSaveFailureSignalsOrphan(t *testing.T) {
	store := storeWithAssignment("a1")
	store.failSave = true
	svc := NewAttachmentService(store)

	_, orphaned, err := svc.Add(alice, "a1", sampleFile())

	var pErr *PersistenceError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if len(orphaned) != 1 {
		t.Fatalf("expected orphaned key on save failure, got %v", orphaned)
	}
}

func TestRemoveAttachmentSignalsStoredKey(t *testing.T) {
	store := storeWithAssignment("a1")
	svc := NewAttachmentService(store)

	attachment, _, err := svc.Add(alice, "a1", sampleFile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orphaned, err := svc.Remove(alice, "a1", attachment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orphaned) != 1 || orphaned[0] != attachment.Path {
		t.Fatalf("expected the removed key, got %v", orphaned)
	}
	if len(store.assignments[0].Attachments) != 0 {
		t.Error("attachment metadata not removed")
	}
}

func TestRemoveAttachmentNotFound(t *testing.T) {
	svc := NewAttachmentService(storeWithAssignment("a1"))

	if _, err := svc.Remove(alice, "a1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindAttachment(t *testing.T) {
	store := storeWithAssignment("a1")
	svc := NewAttachmentService(store)
	attachment, _, _ := svc.Add(alice, "a1", sampleFile())

	found, err := svc.Find("a1", attachment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Path != attachment.Path {
		t.Errorf("expected path %q, got %q", attachment.Path, found.Path)
	}
}
