package stats

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AradGolbaghi/new-hw-planner/services"
	"github.com/AradGolbaghi/new-hw-planner/utils/middleware"
	"github.com/AradGolbaghi/new-hw-planner/utils/response"
)

// StatsHandler serves the caller's dashboard numbers
type StatsHandler struct {
	svc *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/v1/stats. The reduction is always scoped to
// the authenticated teacher's own assignments.
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	stats, err := h.svc.ForTeacher(identity.Email)
	if err != nil {
		return response.FromServiceError(c, err, "stats")
	}
	return response.Success(c, stats)
}
