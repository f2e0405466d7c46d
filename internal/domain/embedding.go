package domain

import (
	"context"
)

// EmbeddingService defines the interface for generating text embeddings.
// Implementations must be deterministic for a fixed input within a process
// lifetime so that similarity scoring is testable.
type EmbeddingService interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
