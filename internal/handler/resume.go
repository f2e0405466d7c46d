package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"interview-ease/internal/domain"
	"interview-ease/internal/dto"
	"interview-ease/internal/logger"
)

var allowedResumeExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
}

// ResumeHandler handles resume upload HTTP requests
type ResumeHandler struct {
	extractor  domain.TextExtractor
	classifier domain.CategoryClassifier
	uploadDir  string
}

// NewResumeHandler creates a new ResumeHandler instance
func NewResumeHandler(extractor domain.TextExtractor, classifier domain.CategoryClassifier, uploadDir string) *ResumeHandler {
	return &ResumeHandler{
		extractor:  extractor,
		classifier: classifier,
		uploadDir:  uploadDir,
	}
}

// Upload godoc
// @Summary Upload a resume
// @Description Extracts text from the resume and detects interview categories
// @Tags resume
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume file (.pdf, .docx, .txt)"
// @Success 200 {object} dto.UploadResumeResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/resume [post]
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("Resume file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedResumeExtensions[ext]; !ok {
		return domain.NewInvalidInputError(
			fmt.Sprintf("Unsupported file type %q: expected .pdf, .docx or .txt", ext))
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return domain.NewInternalError("Failed to prepare upload directory", err)
	}
	savedPath := filepath.Join(h.uploadDir, uuid.NewString()+ext)
	if err := c.SaveFile(fileHeader, savedPath); err != nil {
		return domain.NewInternalError("Failed to save uploaded file", err)
	}
	defer os.Remove(savedPath)

	text, err := h.extractor.Extract(c.Context(), savedPath)
	if err != nil {
		return domain.NewInternalError("Failed to extract resume text", err)
	}

	categories, err := h.classifier.Classify(c.Context(), text)
	if err != nil {
		return domain.NewInternalError("Failed to classify resume", err)
	}

	logger.Get().Info("Resume processed",
		zap.String("filename", fileHeader.Filename),
		zap.Int("text_length", len(text)),
		zap.Int("categories_found", len(categories)),
	)

	message := "Resume processed successfully"
	if len(categories) == 0 {
		message = "Resume processed, but no known skill categories were detected"
	}
	return c.JSON(dto.UploadResumeResponse{
		Message:         message,
		Filename:        fileHeader.Filename,
		Categories:      categories,
		TotalCategories: len(categories),
	})
}
