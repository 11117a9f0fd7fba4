// internal/store/memory.go
//
// In-memory store of solver sessions for the HTTP API.
//
// Characteristics:
//   - Stores *Entry objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Errors are returned for missing IDs on Get().
//
// A solver.Session is not safe for concurrent use, so callers hold Entry.Mu
// while they touch the session.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// Entry is a stored session.
type Entry struct {
	ID      string
	Created time.Time
	Mu      sync.Mutex // guards Session
	Session *solver.Session
}

// SessionStore defines the persistence interface for sessions.
type SessionStore interface {
	// Save persists or updates a session.
	Save(ctx context.Context, e *Entry) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is not found.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete removes a session. Missing IDs are ignored.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based SessionStore implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*Entry // keyed by Entry.ID
}

// NewMemoryStore constructs a new in-memory SessionStore.
func NewMemoryStore() SessionStore {
	return &memory{sessions: make(map[string]*Entry)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[e.ID] = e
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sessions[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

// Delete drops a session.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
