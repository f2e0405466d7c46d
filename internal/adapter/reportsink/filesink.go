// Package reportsink writes finalized interview results to durable storage.
package reportsink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"interview-ease/internal/dto"
)

// FileSink writes each report as a pretty-printed JSON file under a
// configured directory. The report ID doubles as the collision-free part
// of the filename.
type FileSink struct {
	dir string
}

// NewFileSink creates a sink rooted at dir, creating it if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}
	return &FileSink{dir: dir}, nil
}

// Write persists the results and returns the report ID and file path.
func (s *FileSink) Write(ctx context.Context, res *dto.InterviewResults) (string, string, error) {
	reportID := uuid.NewString()
	payload, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal report for session %s: %w", res.SessionID, err)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("interview_report_%s_%s.json", res.SessionID, reportID))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return reportID, path, nil
}
