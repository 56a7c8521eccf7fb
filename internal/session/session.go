// Package session keeps the per-visitor component state of the page. Every
// visitor owns its own contact form and clipboard notifier; nothing here is
// shared between sessions.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/kireistar/portfolio/internal/clipboard"
	"github.com/kireistar/portfolio/internal/contact"
)

// CookieName carries the session id.
const CookieName = "sid"

const DefaultTTL = 30 * time.Minute

type Session struct {
	ID        string
	Contact   *contact.Submitter
	Clipboard *clipboard.Notifier

	lastSeen time.Time
}

// Factory builds the components of a fresh session.
type Factory func(id string) *Session

type Option func(*Registry)

func WithClock(clock clockwork.Clock) Option {
	return func(r *Registry) { r.clock = clock }
}

func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) { r.ttl = ttl }
}

type Registry struct {
	factory Factory
	clock   clockwork.Clock
	ttl     time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(factory Factory, opts ...Option) *Registry {
	r := &Registry{
		factory:  factory,
		clock:    clockwork.NewRealClock(),
		ttl:      DefaultTTL,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open returns the session for id, creating it when unknown. Ids that are
// not valid UUIDs are replaced with a new one.
func (r *Registry) Open(id string) *Session {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = r.factory(id)
		s.ID = id
		r.sessions[id] = s
	}
	s.lastSeen = r.clock.Now()
	return s
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL. A session with a
// submission still sending is kept.
func (r *Registry) Sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) <= r.ttl {
			continue
		}
		if s.Contact != nil && s.Contact.Status().Busy() {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// Run sweeps on every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := r.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
