// Package scorer computes similarity scores for free-text answers against a
// question's reference answers.
package scorer

import (
	"context"
	"strings"

	"interview-ease/internal/config"
	"interview-ease/internal/domain"
	"interview-ease/internal/util"

	"golang.org/x/sync/errgroup"
)

// Scorer embeds a candidate answer and the reference answers into the same
// vector space and scores the candidate by its maximum cosine similarity to
// any reference. Stateless and safe for concurrent use.
type Scorer struct {
	embedder domain.EmbeddingService
	cfg      config.ScoringConfig
}

// New creates a Scorer over the given embedding backend.
func New(embedder domain.EmbeddingService, cfg config.ScoringConfig) *Scorer {
	return &Scorer{embedder: embedder, cfg: cfg}
}

// Score returns the similarity in [-1, 1] (in practice [0, 1] for natural
// text) and the binary correctness decision at the configured threshold.
//
// An empty candidate answer is not an error: it scores 0 and is incorrect.
// A failure of the embedding backend returns EMBEDDING_SERVICE_ERROR and no
// score; callers must not record the submission in that case.
func (s *Scorer) Score(ctx context.Context, candidate string, references []string) (float64, bool, error) {
	if len(references) == 0 {
		return 0, false, domain.NewInvalidInputError("at least one reference answer is required")
	}
	if strings.TrimSpace(candidate) == "" {
		// Remote backends reject empty input; the score of an empty answer
		// is 0 under every backend, so short-circuit.
		return 0, false, nil
	}

	candidateVec, err := s.embedder.Generate(ctx, candidate)
	if err != nil {
		return 0, false, domain.NewEmbeddingServiceError(err)
	}

	referenceVecs := make([][]float32, len(references))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range references {
		g.Go(func() error {
			vec, genErr := s.embedder.Generate(gctx, ref)
			if genErr != nil {
				return genErr
			}
			referenceVecs[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, false, domain.NewEmbeddingServiceError(err)
	}

	best := -1.0
	for _, refVec := range referenceVecs {
		similarity, simErr := util.CosineSimilarity(candidateVec, refVec)
		if simErr != nil {
			return 0, false, domain.NewInternalError("failed to compare embeddings", simErr)
		}
		if similarity > best {
			best = similarity
		}
	}

	return best, best >= s.cfg.CorrectThreshold, nil
}

// BucketScore maps a similarity onto the legacy three-tier point scheme:
// 1 point at or above the high cutoff, 0.5 at or above the low cutoff,
// otherwise 0. Kept for compatibility with older grading flows; the binary
// decision from Score is primary.
func (s *Scorer) BucketScore(similarity float64) float64 {
	switch {
	case similarity >= s.cfg.BucketHigh:
		return 1
	case similarity >= s.cfg.BucketLow:
		return 0.5
	default:
		return 0
	}
}
