package handler

import (
	"github.com/gofiber/fiber/v2"

	"interview-ease/internal/dto"
	"interview-ease/internal/service/metrics"
)

// HealthHandler handles liveness and metrics HTTP requests
type HealthHandler struct {
	metrics *metrics.Metrics
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(m *metrics.Metrics) *HealthHandler {
	return &HealthHandler{metrics: m}
}

// Health godoc
// @Summary Service health
// @Description Returns service status and runtime counters
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:  "ok",
		Metrics: h.metrics.Snapshot(),
	})
}
