package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Sessions is the registry of live client sessions
type Sessions struct {
	clock         clockwork.Clock
	toastDuration time.Duration
	language      string

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessions creates an empty registry. New sessions start in language.
func NewSessions(clock clockwork.Clock, toastDuration time.Duration, language string) *Sessions {
	return &Sessions{
		clock:         clock,
		toastDuration: toastDuration,
		language:      language,
		sessions:      make(map[string]*Session),
	}
}

// Get returns the session with the given id
func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Open returns the session with the given id, creating it if needed. Request
// handling goes through Attach.
func (r *Sessions) Open(id string) *Session {
	if s, ok := r.Get(id); ok {
		s.Touch()
		return s
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := NewSession(id, r.clock, r.toastDuration, r.language)
	r.sessions[id] = s
	return s
}

// Attach returns the live session named by a client supplied id. Unknown or
// empty ids never create a session under that name: a new one is opened
// with a server issued id instead.
func (r *Sessions) Attach(id string) *Session {
	if id != "" {
		if s, ok := r.Get(id); ok {
			s.Touch()
			return s
		}
	}
	return r.Open(uuid.NewString())
}

// ByAccessToken returns every session bound to the auth token
func (r *Sessions) ByAccessToken(token string) []*Session {
	if token == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Session
	for _, s := range r.sessions {
		if s.AccessToken() == token {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of live sessions
func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close removes a session and stops its timers
func (r *Sessions) Close(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Sweep removes sessions idle for longer than maxIdle and returns how many
// were removed.
func (r *Sessions) Sweep(maxIdle time.Duration) int {
	cutoff := r.clock.Now().Add(-maxIdle)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.IdleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}
