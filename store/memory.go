package store

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"
)

// MemoryOption configures a MemoryAdapter.
type MemoryOption func(*MemoryAdapter)

// WithTTL expires entries that have not been written for d. Zero disables
// expiry.
func WithTTL(d time.Duration) MemoryOption {
	return func(m *MemoryAdapter) {
		m.ttl = d
	}
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryAdapter) {
		m.now = now
	}
}

type entry struct {
	value   json.RawMessage
	written time.Time
}

// MemoryAdapter provides thread-safe in-memory storage.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryAdapter creates a new in-memory adapter.
func NewMemoryAdapter(opts ...MemoryOption) *MemoryAdapter {
	m := &MemoryAdapter{
		data: make(map[string]entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryAdapter) expired(e entry) bool {
	return m.ttl > 0 && m.now().Sub(e.written) >= m.ttl
}

// Get retrieves a value by key. Expired entries are reported as missing.
func (m *MemoryAdapter) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[key]
	if !ok || m.expired(e) {
		return nil, false, nil
	}
	return slices.Clone(e.value), true, nil
}

// Set stores a value by key and refreshes its expiry.
func (m *MemoryAdapter) Set(_ context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = entry{value: slices.Clone(value), written: m.now()}
	return nil
}

// Delete removes a key.
func (m *MemoryAdapter) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns all live keys in sorted order.
func (m *MemoryAdapter) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k, e := range m.data {
		if !m.expired(e) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Len returns the number of live keys.
func (m *MemoryAdapter) Len(ctx context.Context) (int, error) {
	keys, err := m.Keys(ctx)
	return len(keys), err
}

// Clear removes all data.
func (m *MemoryAdapter) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]entry)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryAdapter) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, e := range m.data {
		if m.expired(e) {
			delete(m.data, k)
			removed++
		}
	}
	return removed
}
