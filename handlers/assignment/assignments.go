package assignment

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AradGolbaghi/new-hw-planner/model"
	"github.com/AradGolbaghi/new-hw-planner/services"
	"github.com/AradGolbaghi/new-hw-planner/utils/middleware"
	"github.com/AradGolbaghi/new-hw-planner/utils/response"
	"github.com/AradGolbaghi/new-hw-planner/utils/validation"
)

// AssignmentHandler handles assignment-related requests
type AssignmentHandler struct {
	svc       *services.AssignmentService
	validator *validation.Validator
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(svc *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

// RecurrenceRequest is the recurrence policy as sent by clients
type RecurrenceRequest struct {
	Type       string `json:"type" validate:"omitempty,oneof=none daily weekly"`
	Interval   int    `json:"interval" validate:"omitempty,gte=1"`
	DaysOfWeek []int  `json:"days_of_week" validate:"omitempty,dive,gte=0,lte=6"`
}

func (r RecurrenceRequest) toModel() model.Recurrence {
	return model.Recurrence{
		Type:       model.RecurrenceType(r.Type),
		Interval:   r.Interval,
		DaysOfWeek: r.DaysOfWeek,
	}
}

// CreateAssignmentRequest represents the request body for creating an assignment
type CreateAssignmentRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=255"`
	Subject     string            `json:"subject" validate:"required,min=1,max=100"`
	Description string            `json:"description" validate:"omitempty,max=10000"`
	Priority    string            `json:"priority" validate:"omitempty,oneof=low medium high"`
	Tags        []string          `json:"tags"`
	DueDate     time.Time         `json:"due_date" validate:"required"`
	YearGroup   string            `json:"year_group" validate:"omitempty,max=50"`
	ClassName   string            `json:"class_name" validate:"omitempty,max=100"`
	IsRecurring bool              `json:"is_recurring"`
	Recurrence  RecurrenceRequest `json:"recurrence"`
}

// UpdateAssignmentRequest is a partial update; absent fields stay untouched
type UpdateAssignmentRequest struct {
	Title       *string            `json:"title" validate:"omitempty,min=1,max=255"`
	Subject     *string            `json:"subject" validate:"omitempty,min=1,max=100"`
	Description *string            `json:"description" validate:"omitempty,max=10000"`
	Priority    *string            `json:"priority" validate:"omitempty,oneof=low medium high"`
	Tags        *[]string          `json:"tags"`
	DueDate     *time.Time         `json:"due_date"`
	YearGroup   *string            `json:"year_group" validate:"omitempty,max=50"`
	ClassName   *string            `json:"class_name" validate:"omitempty,max=100"`
	Completed   *bool              `json:"completed"`
	IsRecurring *bool              `json:"is_recurring"`
	Recurrence  *RecurrenceRequest `json:"recurrence"`
}

func (r UpdateAssignmentRequest) toPatch() services.UpdateAssignmentInput {
	patch := services.UpdateAssignmentInput{
		Title:       r.Title,
		Subject:     r.Subject,
		Description: r.Description,
		Tags:        r.Tags,
		DueDate:     r.DueDate,
		YearGroup:   r.YearGroup,
		ClassName:   r.ClassName,
		Completed:   r.Completed,
		IsRecurring: r.IsRecurring,
	}
	if r.Priority != nil {
		p := model.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Recurrence != nil {
		rec := r.Recurrence.toModel()
		patch.Recurrence = &rec
	}
	return patch
}

// BulkDeleteRequest represents the request body for bulk deletion
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// BulkUpdateRequest represents the request body for bulk updates
type BulkUpdateRequest struct {
	IDs   []string                `json:"ids" validate:"required,min=1"`
	Patch UpdateAssignmentRequest `json:"patch"`
}

// ListAssignments handles GET /api/v1/assignments
func (h *AssignmentHandler) ListAssignments(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	filters := services.Filters{
		Search:       c.Query("search"),
		Subject:      c.Query("subject"),
		Priority:     c.Query("priority"),
		YearGroup:    c.Query("year_group"),
		TeacherEmail: c.Query("teacher_email"),
		Status:       c.Query("status"),
	}

	if tags := c.Query("tags"); tags != "" {
		filters.Tags = splitTags(tags)
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return response.BadRequest(c, "Invalid 'from' date, expected YYYY-MM-DD")
		}
		filters.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return response.BadRequest(c, "Invalid 'to' date, expected YYYY-MM-DD")
		}
		filters.To = &t
	}

	items, pagination, err := h.svc.List(filters, page, limit)
	if err != nil {
		return response.FromServiceError(c, err, "assignment")
	}

	return response.Paginated(c, items, pagination)
}

// GetAssignment handles GET /api/v1/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *fiber.Ctx) error {
	assignment, err := h.svc.Get(c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "assignment")
	}
	return response.Success(c, assignment)
}

// CreateAssignment handles POST /api/v1/assignments
func (h *AssignmentHandler) CreateAssignment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	req.Title = validation.SanitizeString(req.Title)
	req.Subject = validation.SanitizeString(req.Subject)
	req.Description = validation.SanitizeString(req.Description)

	created, err := h.svc.Create(identity, services.CreateAssignmentInput{
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		Tags:        req.Tags,
		DueDate:     req.DueDate,
		YearGroup:   req.YearGroup,
		ClassName:   req.ClassName,
		IsRecurring: req.IsRecurring,
		Recurrence:  req.Recurrence.toModel(),
	})
	if err != nil {
		return response.FromServiceError(c, err, "assignment")
	}

	return response.Created(c, created)
}

// UpdateAssignment handles PUT /api/v1/assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	updated, err := h.svc.Update(identity, c.Params("id"), req.toPatch())
	if err != nil {
		return response.FromServiceError(c, err, "assignment")
	}

	return response.Success(c, updated)
}

// DeleteAssignment handles DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	if err := h.svc.Delete(identity, c.Params("id")); err != nil {
		return response.FromServiceError(c, err, "assignment")
	}

	return response.SuccessWithMessage(c, "Assignment deleted", nil)
}

// ToggleComplete handles PATCH /api/v1/assignments/:id/toggle
func (h *AssignmentHandler) ToggleComplete(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	updated, err := h.svc.ToggleComplete(identity, c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "assignment")
	}

	return response.Success(c, updated)
}

// BulkDelete handles POST /api/v1/assignments/bulk-delete
func (h *AssignmentHandler) BulkDelete(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	removed, err := h.svc.BulkDelete(identity, req.IDs)
	if err != nil {
		return response.FromServiceError(c, err, "assignment")
	}

	return response.Success(c, fiber.Map{"deleted": removed})
}

// BulkUpdate handles POST /api/v1/assignments/bulk-update
func (h *AssignmentHandler) BulkUpdate(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req BulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	updated, err := h.svc.BulkUpdate(identity, req.IDs, req.Patch.toPatch())
	if err != nil {
		return response.FromServiceError(c, err, "assignment")
	}

	return response.Success(c, fiber.Map{"updated": updated})
}

// splitTags parses a comma-separated tag list, dropping empties
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
