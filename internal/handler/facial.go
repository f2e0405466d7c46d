package handler

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"interview-ease/internal/domain"
	"interview-ease/internal/dto"
)

// FacialService is the monitoring surface the handler depends on.
type FacialService interface {
	Start(ctx context.Context, sessionID string) (*dto.StartFacialResponse, error)
	ProcessFrame(ctx context.Context, sessionID string, frame []byte) (*dto.FrameResponse, error)
	Data(ctx context.Context, sessionID string) (*dto.FacialStatus, error)
	Stop(ctx context.Context, sessionID string) (*dto.FacialSummary, error)
}

// FacialHandler handles facial monitoring HTTP requests
type FacialHandler struct {
	service FacialService
}

// NewFacialHandler creates a new FacialHandler instance
func NewFacialHandler(service FacialService) *FacialHandler {
	return &FacialHandler{service: service}
}

// Start godoc
// @Summary Start facial monitoring
// @Description Opens a facial monitoring session tied to an interview session
// @Tags facial
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.StartFacialResponse
// @Router /api/facial/{id}/start [post]
func (h *FacialHandler) Start(c *fiber.Ctx) error {
	resp, err := h.service.Start(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ProcessFrame godoc
// @Summary Analyze one webcam frame
// @Description Decodes the base64 frame and records the observation
// @Tags facial
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.FrameRequest true "Base64-encoded frame"
// @Success 200 {object} dto.FrameResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/facial/{id}/frames [post]
func (h *FacialHandler) ProcessFrame(c *fiber.Ctx) error {
	var req dto.FrameRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	frame, err := decodeFrame(req.Frame)
	if err != nil {
		return domain.NewInvalidInputError("Frame must be valid base64 image data")
	}

	resp, err := h.service.ProcessFrame(c.Context(), c.Params("id"), frame)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Data godoc
// @Summary Get facial monitoring status
// @Description Returns frame counts, recent alerts and the current observation
// @Tags facial
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.FacialStatus
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/facial/{id} [get]
func (h *FacialHandler) Data(c *fiber.Ctx) error {
	resp, err := h.service.Data(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Stop godoc
// @Summary Stop facial monitoring
// @Description Deactivates the session and returns a summary
// @Tags facial
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.FacialSummary
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/facial/{id}/stop [post]
func (h *FacialHandler) Stop(c *fiber.Ctx) error {
	resp, err := h.service.Stop(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// decodeFrame accepts raw base64 or a data URL ("data:image/jpeg;base64,...").
func decodeFrame(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}
