package domain

import (
	"context"
)

// SessionStore abstracts session persistence. Backends may evict sessions
// after a TTL; sessions are ephemeral and never survive beyond the backend's
// lifetime. Get returns (nil, nil) when the session does not exist.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// FacialStore abstracts facial observation persistence, keyed by the
// interview session identifier. Get returns (nil, nil) when absent.
type FacialStore interface {
	Create(ctx context.Context, session *FacialSession) error
	Get(ctx context.Context, id string) (*FacialSession, error)
	Update(ctx context.Context, session *FacialSession) error
	Delete(ctx context.Context, id string) error
}
