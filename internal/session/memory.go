package session

import (
	"context"
	"sync"
)

// Memory is a mutex-guarded in-process Store. Histories are copied on the
// way in and out so callers never share a mutable slice with the store.
type Memory struct {
	mu       sync.Mutex
	sessions map[string][]Turn
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string][]Turn)}
}

// Get returns the session's history, or an empty history for unknown ids.
func (m *Memory) Get(_ context.Context, id string) ([]Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	turns := m.sessions[id]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Put replaces the session's history.
func (m *Memory) Put(_ context.Context, id string, turns []Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]Turn, len(turns))
	copy(stored, turns)
	m.sessions[id] = stored
	return nil
}

// Clear removes the session.
func (m *Memory) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
