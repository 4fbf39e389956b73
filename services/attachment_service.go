package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// AttachmentService manages attachment metadata on assignments. The
// file bytes live in external object storage; this service only records
// metadata and tells the caller which storage keys have become orphaned
// and must be deleted. It performs no file I/O itself.
type AttachmentService struct {
	store database.Storage
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(store database.Storage) *AttachmentService {
	return &AttachmentService{store: store}
}

// FileRecord is the already-validated metadata of a stored upload. The
// upload layer has checked the type whitelist and size ceiling before
// the engine ever sees it.
type FileRecord struct {
	Filename string
	Path     string
	MimeType string
	Size     int64
}

// Add appends the attachment to the assignment and touches its update
// timestamp. When the assignment does not exist, or persisting fails,
// the just-stored file is orphaned: its key comes back in orphanedKeys
// so the caller can run the compensating deletion.
func (svc *AttachmentService) Add(identity model.Identity, assignmentID string, file FileRecord) (attachment model.Attachment, orphanedKeys []string, err error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return model.Attachment{}, []string{file.Path}, &PersistenceError{Err: err}
	}

	idx := indexByID(assignments, assignmentID)
	if idx < 0 {
		return model.Attachment{}, []string{file.Path}, ErrNotFound
	}

	now := time.Now().UTC()
	attachment = model.Attachment{
		ID:         uuid.New().String(),
		Filename:   file.Filename,
		Path:       file.Path,
		MimeType:   file.MimeType,
		Size:       file.Size,
		UploadedBy: identity.Email,
		UploadedAt: now,
	}

	assignments[idx].Attachments = append(assignments[idx].Attachments, attachment)
	assignments[idx].UpdatedAt = now

	if err := svc.store.SaveAssignments(assignments); err != nil {
		return model.Attachment{}, []string{file.Path}, &PersistenceError{Err: err}
	}
	return attachment, nil, nil
}

// Find returns the attachment metadata for a download request
func (svc *AttachmentService) Find(assignmentID, attachmentID string) (model.Attachment, error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return model.Attachment{}, &PersistenceError{Err: err}
	}

	idx := indexByID(assignments, assignmentID)
	if idx < 0 {
		return model.Attachment{}, ErrNotFound
	}
	for _, att := range assignments[idx].Attachments {
		if att.ID == attachmentID {
			return att, nil
		}
	}
	return model.Attachment{}, ErrNotFound
}

// Remove deletes the metadata entry, touches the assignment's update
// timestamp and reports the storage key of the now-unreferenced file
// for the caller to delete.
func (svc *AttachmentService) Remove(identity model.Identity, assignmentID, attachmentID string) (orphanedKeys []string, err error) {
	assignments, err := svc.store.LoadAssignments()
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	idx := indexByID(assignments, assignmentID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	attachments := assignments[idx].Attachments
	found := -1
	for i, att := range attachments {
		if att.ID == attachmentID {
			found = i
			break
		}
	}
	if found < 0 {
		return nil, ErrNotFound
	}

	removed := attachments[found]
	assignments[idx].Attachments = append(attachments[:found], attachments[found+1:]...)
	assignments[idx].UpdatedAt = time.Now().UTC()

	if err := svc.store.SaveAssignments(assignments); err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return []string{removed.Path}, nil
}
