package embedding

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"time"

	"interview-ease/internal/adapter/rediscache"
	"interview-ease/internal/config"
	"interview-ease/internal/domain"
	"interview-ease/internal/logger"

	"github.com/tmc/langchaingo/embeddings"
	openaiLLM "github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultEmbeddingTTL = 168 * time.Hour // 7 days

// OpenAIEmbeddingService implements the domain.EmbeddingService interface
// using OpenAI, with a cache in front of the API and singleflight so that
// concurrent requests for the same text trigger a single API call.
type OpenAIEmbeddingService struct {
	embedder embeddings.Embedder
	cache    domain.Cache
	cfg      *config.Config
	sfGroup  singleflight.Group
}

// NewOpenAIEmbeddingService creates a new OpenAIEmbeddingService. The cache
// may be nil, in which case every call hits the API.
func NewOpenAIEmbeddingService(apiKey, modelName string, cache domain.Cache, cfg *config.Config) (*OpenAIEmbeddingService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if modelName == "" {
		modelName = "text-embedding-ada-002"
	}

	llm, err := openaiLLM.New(
		openaiLLM.WithToken(apiKey),
		openaiLLM.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI LLM client for embedder: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create generic embedder from OpenAI LLM: %w", err)
	}

	return &OpenAIEmbeddingService{
		embedder: embedder,
		cache:    cache,
		cfg:      cfg,
	}, nil
}

// Generate creates an embedding for the given text using the OpenAI embedder.
func (s *OpenAIEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty for embedding")
	}

	cacheKey := rediscache.GenerateCacheKey("embedding", "openai", hashString(text))

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var embedding []float32
			decoder := gob.NewDecoder(bytes.NewReader([]byte(cached)))
			if errDecode := decoder.Decode(&embedding); errDecode == nil {
				return embedding, nil
			}
			logger.Get().Warn("Failed to decode cached embedding, regenerating",
				zap.String("cacheKey", cacheKey))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Error("Embedding cache read failed",
				zap.Error(err), zap.String("cacheKey", cacheKey))
		}
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		embedding, fetchErr := s.embedder.EmbedQuery(ctx, text)
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to generate embedding using OpenAI: %w", fetchErr)
		}
		if len(embedding) == 0 {
			return nil, fmt.Errorf("received empty embedding from OpenAI")
		}

		if s.cache != nil {
			var buffer bytes.Buffer
			if errEncode := gob.NewEncoder(&buffer).Encode(embedding); errEncode != nil {
				// Return the data even if caching fails.
				return embedding, nil
			}
			cacheTTL := defaultEmbeddingTTL
			if s.cfg != nil {
				cacheTTL = s.cfg.ParseTTLStringOrDefault(s.cfg.Embedding.CacheTTL, defaultEmbeddingTTL)
			}
			if errSet := s.cache.Set(ctx, cacheKey, buffer.String(), cacheTTL); errSet != nil {
				logger.Get().Error("Failed to cache embedding",
					zap.Error(errSet), zap.String("cacheKey", cacheKey))
			}
		}
		return embedding, nil
	})
	if err != nil {
		return nil, err
	}

	embedding, ok := res.([]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for openai embedding: %T", res)
	}
	return embedding, nil
}
