package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AradGolbaghi/new-hw-planner/database"
)

// HealthHandler reports process liveness and storage reachability
type HealthHandler struct {
	store     database.Storage
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store database.Storage) *HealthHandler {
	return &HealthHandler{
		store:     store,
		startedAt: time.Now().UTC(),
	}
}

// Liveness handles GET /health
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Readiness handles GET /health/ready and includes a storage probe
func (h *HealthHandler) Readiness(c *fiber.Ctx) error {
	if err := h.store.HealthCheck(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "degraded",
			"storage": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"storage": "reachable",
	})
}
