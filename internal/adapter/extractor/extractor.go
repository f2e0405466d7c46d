// Package extractor turns uploaded resume files into plain text.
package extractor

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"interview-ease/internal/config"
	"interview-ease/internal/logger"
)

// maxExtractedBytes caps the response body read from the extraction service.
const maxExtractedBytes = 4 << 20

// TextExtractor reads .txt files natively and delegates .pdf/.docx to an
// external extraction service. Extraction failures are reported to the log
// and yield empty text rather than an error: an unreadable resume downgrades
// category detection, it never fails the upload.
type TextExtractor struct {
	client     *http.Client
	serviceURL string
}

// New creates a TextExtractor from config. An empty service URL disables
// PDF/DOCX extraction.
func New(cfg config.ExtractorConfig) *TextExtractor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TextExtractor{
		client:     &http.Client{Timeout: timeout},
		serviceURL: cfg.ServiceURL,
	}
}

// Extract returns the plain text of the file at path.
func (e *TextExtractor) Extract(ctx context.Context, path string) (string, error) {
	log := logger.Get()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("failed to read resume text file", zap.String("path", path), zap.Error(err))
			return "", nil
		}
		return string(data), nil
	case ".pdf", ".docx":
		text, err := e.extractRemote(ctx, path)
		if err != nil {
			log.Warn("resume text extraction failed", zap.String("path", path), zap.Error(err))
			return "", nil
		}
		return text, nil
	default:
		log.Warn("unsupported resume file type", zap.String("path", path))
		return "", nil
	}
}

func (e *TextExtractor) extractRemote(ctx context.Context, path string) (string, error) {
	if e.serviceURL == "" {
		return "", fmt.Errorf("extraction service is not configured")
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	body := &strings.Builder{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.serviceURL, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("extraction service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	text, err := io.ReadAll(io.LimitReader(resp.Body, maxExtractedBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read extraction response: %w", err)
	}
	return string(text), nil
}
