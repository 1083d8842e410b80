package session

import (
	"context"
	"sync"
	"time"

	"github.com/BerylCAtieno/scheme-recommender/internal/models"
)

type entry struct {
	profile  models.Profile
	lastSeen time.Time
}

// Memory is an in-process Store. Profiles idle for longer than ttl are
// dropped on the next access.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
	pending map[string]struct{}
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
		pending: make(map[string]struct{}),
	}
}

func (m *Memory) Load(_ context.Context, id string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	e, ok := m.entries[id]
	if !ok {
		return models.Profile{}, nil
	}
	e.lastSeen = m.now()
	m.entries[id] = e
	return e.profile, nil
}

func (m *Memory) Save(_ context.Context, id string, p models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = entry{profile: p, lastSeen: m.now()}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

func (m *Memory) TryAcquire(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.pending[id]; busy {
		return false, nil
	}
	m.pending[id] = struct{}{}
	return true, nil
}

func (m *Memory) Release(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.pending, id)
	return nil
}

func (m *Memory) Pending(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, busy := m.pending[id]
	return busy, nil
}

// sweep must be called with mu held.
func (m *Memory) sweep() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			delete(m.entries, id)
		}
	}
}
