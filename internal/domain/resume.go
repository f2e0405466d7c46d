package domain

import (
	"context"
)

// TextExtractor returns the raw text of a resume file (PDF/DOCX/TXT).
// Extraction failures are not fatal to the core: implementations log the
// failure and return empty text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// CategoryClassifier maps resume text to zero or more skill category labels.
type CategoryClassifier interface {
	Classify(ctx context.Context, text string) ([]string, error)
}
