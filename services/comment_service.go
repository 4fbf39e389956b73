package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// CommentService appends comments to assignments. Comments cannot be
// edited or removed once created; they disappear only when their
// assignment is deleted.
type CommentService struct {
	store database.Storage
}

// NewCommentService creates a new comment service
func NewCommentService(store database.Storage) *CommentService {
	return &CommentService{store: store}
}

// Add appends a comment authored by the identity to the assignment and
// touches the assignment's update timestamp. Empty or whitespace-only
// content is rejected without mutating anything.
func (svc *CommentService) Add(identity model.Identity, assignmentID, content string) (model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, NewValidationError(map[string]string{
			"content": "content is required",
		})
	}

	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return model.Comment{}, &PersistenceError{Err: err}
	}

	idx := indexByID(assignments, assignmentID)
	if idx < 0 {
		return model.Comment{}, ErrNotFound
	}

	now := time.Now().UTC()
	comment := model.Comment{
		ID:         uuid.New().String(),
		Content:    content,
		Author:     identity.Email,
		AuthorName: identity.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	assignments[idx].Comments = append(assignments[idx].Comments, comment)
	assignments[idx].UpdatedAt = now

	if err := svc.store.SaveAssignments(assignments); err != nil {
		return model.Comment{}, &PersistenceError{Err: err}
	}
	return comment, nil
}
