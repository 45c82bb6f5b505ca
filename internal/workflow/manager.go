package workflow

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("workflow session not found")

// Manager tracks open submission sessions per process. Sessions are
// plain per-viewer state; there is no cross-instance coordination.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Open creates and registers a session.
func (m *Manager) Open(filmID, authorID uuid.UUID, playbackTime *int) *Session {
	s := NewSession(filmID, authorID, playbackTime)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id for the given author.
// Sessions are private to the viewer who opened them.
func (m *Manager) Get(id, authorID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.AuthorID != authorID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close abandons a session. Abandonment has no side effects at any
// step prior to submit.
func (m *Manager) Close(id, authorID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.AuthorID != authorID {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}
