package attachment

import (
	"bytes"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AradGolbaghi/new-hw-planner/services"
	"github.com/AradGolbaghi/new-hw-planner/services/storage"
	"github.com/AradGolbaghi/new-hw-planner/utils/filecheck"
	"github.com/AradGolbaghi/new-hw-planner/utils/middleware"
	"github.com/AradGolbaghi/new-hw-planner/utils/response"
)

// presignExpiry is how long a generated download link stays valid
const presignExpiry = 15 * time.Minute

// AttachmentHandler validates uploads, moves bytes to object storage
// and keeps the metadata side in sync through the attachment service.
// The engine signals orphaned storage keys; this handler is the one
// that actually deletes them.
type AttachmentHandler struct {
	svc    *services.AttachmentService
	spaces *storage.SpacesClient
}

// NewAttachmentHandler creates a new attachment handler. The spaces
// client may be nil (local development); uploads are then rejected.
func NewAttachmentHandler(svc *services.AttachmentService, spaces *storage.SpacesClient) *AttachmentHandler {
	return &AttachmentHandler{
		svc:    svc,
		spaces: spaces,
	}
}

// UploadAttachment handles POST /api/v1/assignments/:id/attachments
func (h *AttachmentHandler) UploadAttachment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	if h.spaces == nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "File storage is not configured", "SERVICE_UNAVAILABLE")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Missing 'file' form field")
	}

	checked, err := filecheck.ValidateUpload(fileHeader)
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}
	if !checked.Valid {
		return response.BadRequest(c, checked.Error)
	}

	// Store the bytes first; the engine only ever sees metadata
	key := storage.GenerateKey("attachments", checked.File.Filename)
	if err := h.spaces.UploadFile(c.Context(), key, bytes.NewReader(checked.File.Content), checked.File.MimeType); err != nil {
		log.Printf("Warning: Failed to upload attachment to storage: %v", err)
		return response.InternalServerError(c, "Failed to store file")
	}

	attachment, orphaned, err := h.svc.Add(identity, c.Params("id"), services.FileRecord{
		Filename: checked.File.Filename,
		Path:     key,
		MimeType: checked.File.MimeType,
		Size:     checked.File.Size,
	})
	if err != nil {
		// The engine rejected the metadata, so the stored file is an
		// orphan. Delete it before reporting the error.
		h.deleteKeys(c, orphaned)
		return response.FromServiceError(c, err, "assignment")
	}

	return response.Created(c, attachment)
}

// RemoveAttachment handles DELETE /api/v1/assignments/:id/attachments/:attachmentId
func (h *AttachmentHandler) RemoveAttachment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	orphaned, err := h.svc.Remove(identity, c.Params("id"), c.Params("attachmentId"))
	if err != nil {
		return response.FromServiceError(c, err, "attachment")
	}

	h.deleteKeys(c, orphaned)
	return response.SuccessWithMessage(c, "Attachment removed", nil)
}

// DownloadAttachment handles GET /api/v1/assignments/:id/attachments/:attachmentId
// by redirecting to a short-lived presigned URL
func (h *AttachmentHandler) DownloadAttachment(c *fiber.Ctx) error {
	if h.spaces == nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "File storage is not configured", "SERVICE_UNAVAILABLE")
	}

	attachment, err := h.svc.Find(c.Params("id"), c.Params("attachmentId"))
	if err != nil {
		return response.FromServiceError(c, err, "attachment")
	}

	url, err := h.spaces.GetPresignedURL(attachment.Path, presignExpiry)
	if err != nil {
		log.Printf("Warning: Failed to presign attachment URL: %v", err)
		return response.InternalServerError(c, "Failed to generate download link")
	}

	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

// deleteKeys runs the compensating deletions the engine asked for
func (h *AttachmentHandler) deleteKeys(c *fiber.Ctx, keys []string) {
	if h.spaces == nil {
		return
	}
	for _, key := range keys {
		if err := h.spaces.DeleteFile(c.Context(), key); err != nil {
			log.Printf("Warning: Failed to delete stored file %s: %v", key, err)
		}
	}
}
