// Package store provides session persistence backends: an in-process map
// with TTL sweeping, and a Redis-backed store with native expiry.
package store

import (
	"context"
	"sync"
	"time"

	"interview-ease/internal/domain"
)

const sweepInterval = time.Minute

// MemorySessionStore is a thread-safe in-memory SessionStore. With a
// positive TTL a background sweep evicts idle sessions, fixing the
// unbounded-growth leak of keeping sessions in a bare process-wide map.
// TTL 0 disables eviction (dev use only). Contents do not survive restarts.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	deadline map[string]time.Time
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemorySessionStore creates a memory store with the given TTL.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]*domain.Session),
		deadline: make(map[string]time.Time),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

func (s *MemorySessionStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, dl := range s.deadline {
				if now.After(dl) {
					delete(s.sessions, id)
					delete(s.deadline, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the eviction sweep.
func (s *MemorySessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemorySessionStore) put(session *domain.Session) {
	s.sessions[session.ID] = session.Clone()
	if s.ttl > 0 {
		s.deadline[session.ID] = time.Now().Add(s.ttl)
	}
}

// Create stores a new session.
func (s *MemorySessionStore) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(session)
	return nil
}

// Get returns a copy of the session, or (nil, nil) when absent or expired.
func (s *MemorySessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if dl, hasDL := s.deadline[id]; hasDL && time.Now().After(dl) {
		return nil, nil
	}
	return session.Clone(), nil
}

// Update overwrites the stored session and refreshes its TTL.
func (s *MemorySessionStore) Update(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(session)
	return nil
}

// Delete removes the session; deleting an absent session is not an error.
func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.deadline, id)
	return nil
}

// MemoryFacialStore is the in-memory FacialStore counterpart.
type MemoryFacialStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.FacialSession
	deadline map[string]time.Time
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryFacialStore creates a memory-backed facial store.
func NewMemoryFacialStore(ttl time.Duration) *MemoryFacialStore {
	s := &MemoryFacialStore{
		sessions: make(map[string]*domain.FacialSession),
		deadline: make(map[string]time.Time),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

func (s *MemoryFacialStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, dl := range s.deadline {
				if now.After(dl) {
					delete(s.sessions, id)
					delete(s.deadline, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the eviction sweep.
func (s *MemoryFacialStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryFacialStore) put(session *domain.FacialSession) {
	s.sessions[session.ID] = session.Clone()
	if s.ttl > 0 {
		s.deadline[session.ID] = time.Now().Add(s.ttl)
	}
}

func (s *MemoryFacialStore) Create(ctx context.Context, session *domain.FacialSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(session)
	return nil
}

func (s *MemoryFacialStore) Get(ctx context.Context, id string) (*domain.FacialSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if dl, hasDL := s.deadline[id]; hasDL && time.Now().After(dl) {
		return nil, nil
	}
	return session.Clone(), nil
}

func (s *MemoryFacialStore) Update(ctx context.Context, session *domain.FacialSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(session)
	return nil
}

func (s *MemoryFacialStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.deadline, id)
	return nil
}
