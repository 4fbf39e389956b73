package comment

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AradGolbaghi/new-hw-planner/services"
	"github.com/AradGolbaghi/new-hw-planner/utils/middleware"
	"github.com/AradGolbaghi/new-hw-planner/utils/response"
	"github.com/AradGolbaghi/new-hw-planner/utils/validation"
)

// CommentHandler handles comment-related requests
type CommentHandler struct {
	svc       *services.CommentService
	validator *validation.Validator
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(svc *services.CommentService) *CommentHandler {
	return &CommentHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

// AddCommentRequest represents the request body for adding a comment
type AddCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// AddComment handles POST /api/v1/assignments/:id/comments
func (h *CommentHandler) AddComment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	comment, err := h.svc.Add(identity, c.Params("id"), req.Content)
	if err != nil {
		return response.FromServiceError(c, err, "assignment")
	}

	return response.Created(c, comment)
}
