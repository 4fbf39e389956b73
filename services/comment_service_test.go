package services

import (
	"errors"
	"testing"
	"time"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

func storeWithAssignment(id string) *fakeStore {
	return &fakeStore{assignments: []model.Assignment{{
		ID:           id,
		Title:        "Worksheet",
		Subject:      "Math",
		DueDate:      time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		TeacherEmail: alice.Email,
		UpdatedAt:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Comments:     []model.Comment{},
	}}}
}

func TestAddCommentAppendsAndTouchesAssignment(t *testing.T) {
	store := storeWithAssignment("a1")
	svc := NewCommentService(store)

	comment, err := svc.Add(bob, "a1", "  Looks good  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if comment.Content != "Looks good" {
		t.Errorf("expected trimmed content, got %q", comment.Content)
	}
	if comment.Author != bob.Email || comment.AuthorName != bob.Name {
		t.Errorf("author not stamped: %q / %q", comment.Author, comment.AuthorName)
	}

	saved := store.assignments[0]
	if len(saved.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(saved.Comments))
	}
	if !saved.UpdatedAt.Equal(comment.CreatedAt) {
		t.Error("assignment update timestamp must be touched")
	}
}

func TestAddCommentRejectsBlankContent(t *testing.T) {
	store := storeWithAssignment("a1")
	svc := NewCommentService(store)

	_, err := svc.Add(bob, "a1", "   ")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(store.assignments[0].Comments) != 0 {
		t.Error("rejected comment must not mutate the assignment")
	}
}

func TestAddCommentAssignmentNotFound(t *testing.T) {
	svc := NewCommentService(storeWithAssignment("a1"))

	_, err := svc.Add(bob, "missing", "hello")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
