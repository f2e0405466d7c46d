package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"interview-ease/internal/domain"
	"interview-ease/internal/dto"
	"interview-ease/internal/logger"
	"interview-ease/internal/service/results"
)

// InterviewService is the session lifecycle surface the handler depends on.
type InterviewService interface {
	Create(ctx context.Context, categories []string, perCategory int) (*dto.StartInterviewResponse, error)
	GetQuestion(ctx context.Context, sessionID string, index int) (*dto.GetQuestionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, index int, answer string) (*dto.SubmitAnswerResponse, error)
	GetResults(ctx context.Context, sessionID string) (*dto.InterviewResults, error)
}

// InterviewHandler handles interview session HTTP requests
type InterviewHandler struct {
	service InterviewService
	sink    results.Sink
}

// NewInterviewHandler creates a new InterviewHandler instance
func NewInterviewHandler(service InterviewService, sink results.Sink) *InterviewHandler {
	return &InterviewHandler{
		service: service,
		sink:    sink,
	}
}

// Start godoc
// @Summary Start an interview session
// @Description Selects questions for the requested categories and creates a session
// @Tags interview
// @Accept json
// @Produce json
// @Param request body dto.StartInterviewRequest true "Categories to interview on"
// @Success 201 {object} dto.StartInterviewResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/interviews [post]
func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	var req dto.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.Create(c.Context(), req.Categories, req.QuestionsPerCategory)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuestion godoc
// @Summary Get a question from a session
// @Description Returns the question at the given index without reference answers
// @Tags interview
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Question index"
// @Success 200 {object} dto.GetQuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/interviews/{id}/questions/{index} [get]
func (h *InterviewHandler) GetQuestion(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	index, err := c.ParamsInt("index")
	if err != nil {
		return domain.NewInvalidInputError("Question index must be an integer")
	}

	resp, err := h.service.GetQuestion(c.Context(), sessionID, index)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Scores the answer for the session's next expected question
// @Tags interview
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Answer submission"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /api/interviews/{id}/answers [post]
func (h *InterviewHandler) SubmitAnswer(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.SubmitAnswer(c.Context(), sessionID, req.Index, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetResults godoc
// @Summary Get session results
// @Description Returns the aggregated results for a partial or completed session
// @Tags interview
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.InterviewResults
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/interviews/{id}/results [get]
func (h *InterviewHandler) GetResults(c *fiber.Ctx) error {
	resp, err := h.service.GetResults(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// WriteReport godoc
// @Summary Write a report document
// @Description Persists the session's current results as a JSON report
// @Tags interview
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} dto.ReportResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/interviews/{id}/report [post]
func (h *InterviewHandler) WriteReport(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	res, err := h.service.GetResults(c.Context(), sessionID)
	if err != nil {
		return err
	}

	reportID, path, err := h.sink.Write(c.Context(), res)
	if err != nil {
		logger.Get().Error("Failed to write interview report",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return domain.NewInternalError("Failed to write report", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReportResponse{
		ReportID: reportID,
		Path:     path,
	})
}
