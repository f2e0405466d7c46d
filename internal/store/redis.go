package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"interview-ease/internal/adapter/rediscache"
	"interview-ease/internal/domain"
)

// RedisSessionStore persists interview sessions as JSON in Redis.
// Expiry is delegated to Redis via the configured TTL, so sessions
// survive process restarts and are shared across replicas.
type RedisSessionStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewRedisSessionStore creates a Redis-backed SessionStore.
func NewRedisSessionStore(cache domain.Cache, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{cache: cache, ttl: ttl}
}

func sessionKey(id string) string {
	return rediscache.GenerateCacheKey("session", "interview", id)
}

func (s *RedisSessionStore) set(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
	}
	return s.cache.Set(ctx, sessionKey(session.ID), string(payload), s.ttl)
}

// Create stores a new session.
func (s *RedisSessionStore) Create(ctx context.Context, session *domain.Session) error {
	return s.set(ctx, session)
}

// Get returns the session, or (nil, nil) when the key is absent or expired.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.cache.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &session, nil
}

// Update overwrites the stored session and refreshes its TTL.
func (s *RedisSessionStore) Update(ctx context.Context, session *domain.Session) error {
	return s.set(ctx, session)
}

// Delete removes the session key.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, sessionKey(id))
}

// RedisFacialStore persists facial monitoring sessions in Redis.
type RedisFacialStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewRedisFacialStore creates a Redis-backed FacialStore.
func NewRedisFacialStore(cache domain.Cache, ttl time.Duration) *RedisFacialStore {
	return &RedisFacialStore{cache: cache, ttl: ttl}
}

func facialKey(id string) string {
	return rediscache.GenerateCacheKey("session", "facial", id)
}

func (s *RedisFacialStore) set(ctx context.Context, session *domain.FacialSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal facial session %s: %w", session.ID, err)
	}
	return s.cache.Set(ctx, facialKey(session.ID), string(payload), s.ttl)
}

func (s *RedisFacialStore) Create(ctx context.Context, session *domain.FacialSession) error {
	return s.set(ctx, session)
}

func (s *RedisFacialStore) Get(ctx context.Context, id string) (*domain.FacialSession, error) {
	payload, err := s.cache.Get(ctx, facialKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get facial session %s: %w", id, err)
	}
	var session domain.FacialSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal facial session %s: %w", id, err)
	}
	return &session, nil
}

func (s *RedisFacialStore) Update(ctx context.Context, session *domain.FacialSession) error {
	return s.set(ctx, session)
}

func (s *RedisFacialStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, facialKey(id))
}
