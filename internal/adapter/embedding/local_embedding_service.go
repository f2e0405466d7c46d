package embedding

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// LocalEmbeddingService is a TF-IDF vectorizer implementing the
// domain.EmbeddingService port. It builds its vocabulary from the question
// bank corpus at startup, needs no external model, and is deterministic for
// a fixed corpus and input, which makes it the default backend for tests
// and offline use.
type LocalEmbeddingService struct {
	mu           sync.RWMutex
	vocabulary   map[string]int
	idf          []float64
	dimension    int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewLocalEmbeddingService creates a TF-IDF embedding service prepared over
// the given corpus.
func NewLocalEmbeddingService(corpus []string) (*LocalEmbeddingService, error) {
	s := &LocalEmbeddingService{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
	if err := s.prepare(corpus); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LocalEmbeddingService) prepare(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("empty corpus for TF-IDF preparation")
	}

	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range s.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Stable vocabulary ordering keeps embeddings reproducible.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return fmt.Errorf("no tokens found in corpus")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocabulary = make(map[string]int, len(terms))
	s.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		s.vocabulary[term] = i
		// Smoothed IDF
		s.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	s.dimension = len(terms)
	return nil
}

// Dimension returns the dimensionality of the produced vectors.
func (s *LocalEmbeddingService) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimension
}

// Generate computes the L2-normalized TF-IDF embedding for the given text.
// Text with no in-vocabulary tokens (including the empty string) yields the
// zero vector, whose cosine similarity to anything is 0.
func (s *LocalEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dimension == 0 {
		return nil, fmt.Errorf("local embedding service is not prepared")
	}

	vec := make([]float32, s.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range s.tokenize(text) {
		if idx, ok := s.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}

	var normSquared float64
	for idx, count := range tf {
		v := (float64(count) / float64(total)) * s.idf[idx]
		vec[idx] = float32(v)
		normSquared += v * v
	}
	norm := math.Sqrt(normSquared)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec, nil
}

func (s *LocalEmbeddingService) tokenize(text string) []string {
	raw := s.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := s.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "than", "so", "such", "into",
		"about", "between", "through", "during", "before", "after", "can",
		"will", "just", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
