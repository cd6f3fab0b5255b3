// internal/store/memory.go
//
// In-memory store for live GPT Golf sessions.
//
// Characteristics:
//   - Stores game.Session values keyed by ID; callers get a copy, never a shared pointer.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; finished games live on in the results DB.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/gptgolf/internal/game"
)

// ErrNotFound is returned by Get for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for live sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (game.Session, error)

	// Delete drops a session; unknown ids are ignored.
	Delete(ctx context.Context, id string) error
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]game.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]game.Session)}
}

func (m *memory) Save(_ context.Context, s game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Dialogue = append([]string(nil), s.Dialogue...)
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(_ context.Context, id string) (game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return game.Session{}, ErrNotFound
	}
	s.Dialogue = append([]string(nil), s.Dialogue...)
	return s, nil
}

func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
