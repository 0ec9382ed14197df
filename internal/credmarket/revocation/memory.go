package revocation

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local List. Entries vanish on restart, which is
// acceptable for a single instance; multi-instance deployments use Redis.
type Memory struct {
	Now func() time.Time

	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemory() *Memory {
	return &Memory{Now: time.Now, entries: make(map[string]time.Time)}
}

func (m *Memory) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return ErrEmptyJTI
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now()
	if !expiresAt.After(now) {
		return nil
	}
	m.entries[jti] = expiresAt
	m.sweepLocked(now)
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.entries[jti]
	if !ok {
		return false, nil
	}
	if !exp.After(m.Now()) {
		delete(m.entries, jti)
		return false, nil
	}
	return true, nil
}

func (m *Memory) Close() error { return nil }

// Len reports live and not yet swept entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) sweepLocked(now time.Time) {
	for k, exp := range m.entries {
		if !exp.After(now) {
			delete(m.entries, k)
		}
	}
}
