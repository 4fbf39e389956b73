package template

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AradGolbaghi/new-hw-planner/services"
	"github.com/AradGolbaghi/new-hw-planner/utils/middleware"
	"github.com/AradGolbaghi/new-hw-planner/utils/response"
	"github.com/AradGolbaghi/new-hw-planner/utils/validation"
)

// TemplateHandler handles assignment template requests
type TemplateHandler struct {
	svc       *services.TemplateService
	validator *validation.Validator
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(svc *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

// CreateTemplateRequest represents the request body for creating a template
type CreateTemplateRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Subject     string   `json:"subject" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"omitempty,max=10000"`
	Tags        []string `json:"tags"`
}

// ListTemplates handles GET /api/v1/templates
func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.svc.List()
	if err != nil {
		return response.FromServiceError(c, err, "template")
	}
	return response.Success(c, templates)
}

// CreateTemplate handles POST /api/v1/templates
func (h *TemplateHandler) CreateTemplate(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	created, err := h.svc.Create(identity, services.CreateTemplateInput{
		Title:       validation.SanitizeString(req.Title),
		Subject:     validation.SanitizeString(req.Subject),
		Description: validation.SanitizeString(req.Description),
		Tags:        req.Tags,
	})
	if err != nil {
		return response.FromServiceError(c, err, "template")
	}

	return response.Created(c, created)
}

// DeleteTemplate handles DELETE /api/v1/templates/:id
func (h *TemplateHandler) DeleteTemplate(c *fiber.Ctx) error {
	if _, ok := middleware.GetIdentity(c); !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	if err := h.svc.Delete(c.Params("id")); err != nil {
		return response.FromServiceError(c, err, "template")
	}
	return response.SuccessWithMessage(c, "Template deleted", nil)
}
