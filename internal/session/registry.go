// Package session implements the in-memory session registry. The registry
// is the sole owner of session state: entries live only in the process and
// are gone after a restart.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// DefaultTTL is how long a session stays valid after creation.
const DefaultTTL = 24 * time.Hour

// tokenBytes yields 64 URL-safe characters once base64-encoded.
const tokenBytes = 48

// Session associates a bearer token with an authenticated subject.
type Session struct {
	SubjectID int64
	Role      string
	CreatedAt time.Time
}

// Registry is a mutex-guarded map from opaque tokens to live sessions.
// Expiry is evaluated lazily on read: an entry older than the TTL is
// deleted the first time it is looked up, and absence is the only
// terminal state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

// Option customises a Registry at construction time.
type Option func(*Registry)

// WithClock replaces the registry's time source. Intended for tests that
// need deterministic expiry.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty Registry. A non-positive ttl falls back to
// DefaultTTL.
func NewRegistry(ttl time.Duration, opts ...Option) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	r := &Registry{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create mints a fresh token for the subject and stores the session.
// It always succeeds; token entropy (48 random bytes) makes collisions
// with live tokens a non-concern.
func (r *Registry) Create(subjectID int64, role string) string {
	token := newToken()

	r.mu.Lock()
	r.sessions[token] = Session{
		SubjectID: subjectID,
		Role:      role,
		CreatedAt: r.now().UTC(),
	}
	r.mu.Unlock()

	return token
}

// Get resolves a token to its session. A token that is unknown, or whose
// session has outlived the TTL, yields ok=false; expired entries are
// purged on the spot rather than masked.
func (r *Registry) Get(token string) (Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()

	if !ok {
		return Session{}, false
	}
	if r.now().UTC().Sub(s.CreatedAt) >= r.ttl {
		r.Delete(token)
		return Session{}, false
	}
	return s, true
}

// Delete removes the session if present. Deleting an unknown token is a
// no-op.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

// Len returns the number of stored sessions, expired-but-unread entries
// included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// PurgeExpired removes every entry past its TTL and reports how many were
// dropped.
func (r *Registry) PurgeExpired() int {
	cutoff := r.now().UTC().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for token, s := range r.sessions {
		if !s.CreatedAt.After(cutoff) {
			delete(r.sessions, token)
			purged++
		}
	}
	return purged
}

// Reap sweeps expired sessions on the given interval until ctx is
// cancelled. Lazy expiry on Get stays authoritative; the sweep only keeps
// the table from growing without bound when sessions are never read again.
func (r *Registry) Reap(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.PurgeExpired()
		}
	}
}

func newToken() string {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("session: reading random token: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
