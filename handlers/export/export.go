package export

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AradGolbaghi/new-hw-planner/model"
	"github.com/AradGolbaghi/new-hw-planner/services"
	"github.com/AradGolbaghi/new-hw-planner/utils/middleware"
	"github.com/AradGolbaghi/new-hw-planner/utils/response"
)

// ExportHandler handles backup export and import requests
type ExportHandler struct {
	svc *services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(svc *services.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ImportRequest is the body for POST /api/v1/export/import. It accepts
// the same document shape that Export produces.
type ImportRequest struct {
	Assignments []model.Assignment `json:"assignments"`
}

// ExportAssignments handles GET /api/v1/export. The response is served
// as a downloadable JSON document.
func (h *ExportHandler) ExportAssignments(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	doc, err := h.svc.Export(identity)
	if err != nil {
		return response.FromServiceError(c, err, "export")
	}

	filename := fmt.Sprintf("assignments-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).JSON(doc)
}

// ImportAssignments handles POST /api/v1/export/import
func (h *ExportHandler) ImportAssignments(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.svc.Import(identity, req.Assignments)
	if err != nil {
		return response.FromServiceError(c, err, "import")
	}
	return response.SuccessWithMessage(c, "Import complete", result)
}
