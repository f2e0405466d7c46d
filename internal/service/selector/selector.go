// Package selector picks interview questions from the question bank for a
// set of candidate skill categories.
package selector

import (
	"math/rand"

	"interview-ease/internal/domain"
)

// Selector samples questions per category and shuffles the combined list.
// Selection is seeded: the same categories, bank and seed always produce the
// same ordered question list, which keeps interviews reproducible and tests
// deterministic.
type Selector struct {
	seed int64
}

// New creates a Selector with a fixed seed.
func New(seed int64) *Selector {
	return &Selector{seed: seed}
}

// Select picks up to perCategory questions for each category, in the given
// category order, then applies one final shuffle over the combined list.
// A category with no matching questions contributes nothing; a question
// never appears twice even when categories repeat. An empty combined result
// fails with NO_QUESTIONS_AVAILABLE.
func (s *Selector) Select(categories []string, bank []domain.Question, perCategory int) ([]domain.Question, error) {
	if perCategory < 1 {
		return nil, domain.NewInvalidInputError("questions per category must be at least 1")
	}

	rng := rand.New(rand.NewSource(s.seed))
	seen := make(map[string]struct{})
	var selected []domain.Question

	for _, category := range categories {
		var pool []domain.Question
		for _, q := range bank {
			if q.Category != category {
				continue
			}
			if _, dup := seen[q.ID]; dup {
				continue
			}
			pool = append(pool, q)
		}
		if len(pool) == 0 {
			continue
		}

		// Uniform sampling without replacement.
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		take := perCategory
		if take > len(pool) {
			take = len(pool)
		}
		for _, q := range pool[:take] {
			seen[q.ID] = struct{}{}
			selected = append(selected, q)
		}
	}

	if len(selected) == 0 {
		return nil, domain.NewNoQuestionsAvailableError(categories)
	}

	rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected, nil
}
