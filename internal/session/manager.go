package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns every live session, keyed by the uuid carried in the session
// cookie. Sessions are memory-only: an evicted or restarted visitor simply
// starts over with fresh state.
type Manager struct {
	sessions map[string]*Session
	ttl      time.Duration
	mu       sync.RWMutex
}

// NewManager creates a manager evicting sessions idle longer than ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Get looks up a session by id and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch()
	}
	return s, ok
}

// Create registers a new session with a fresh identifier.
func (m *Manager) Create() *Session {
	s := newSession(uuid.New().String())
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle past the TTL and reports how many were removed.
func (m *Manager) Sweep() int {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.idleFor(now) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
