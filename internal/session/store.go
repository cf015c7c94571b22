package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ziadkadry99/sdkview/internal/render"
)

// Store keeps the live sessions of a viewer server in memory.
type Store struct {
	renderer *render.Renderer

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty store whose sessions render with r.
func NewStore(r *render.Renderer) *Store {
	return &Store{renderer: r, sessions: make(map[string]*Session)}
}

// Create starts a new session at home.
func (st *Store) Create() *Session {
	s := newSession(uuid.NewString(), st.renderer)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given ID.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return s, nil
}

// Delete removes a session. Unknown IDs are ignored.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
