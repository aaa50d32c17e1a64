// Package session provides live editing-session storage for the HTTP
// host. A session is one open scene being edited by a client; it is
// transient state with a TTL, not document persistence.
//
// Two backends implement the [Store] interface:
//   - memory: in-process storage for development, tests, and
//     single-instance deployments
//   - redis: Redis-backed storage for multi-instance deployments
//
// # Usage
//
// Create a store and a session:
//
//	store := session.NewMemoryStore()
//	sess := session.New(scene.New(), session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
// Retrieve a session:
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // not found or expired
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/daschober/planesketch/pkg/scene"
)

// ErrStoreUnavailable is returned when the backing store cannot be
// reached (e.g. Redis connection failure).
var ErrStoreUnavailable = errors.New("session store unavailable")

// Default durations.
const (
	// DefaultTTL is how long an idle editing session survives.
	DefaultTTL = 24 * time.Hour
)

// Session is one live editing session: an id, the current scene, and
// bookkeeping timestamps.
type Session struct {
	ID        string
	Scene     scene.Scene
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session has exceeded its TTL.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// New creates a session around the given scene with a fresh id.
func New(sc scene.Scene, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Scene:     sc,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Touch advances the update timestamp and pushes out the expiry.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by id.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op for backends
	// with native expiry, like Redis).
	Cleanup(ctx context.Context) error
}
