package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Typed stores values of one type, JSON-encoded in an adapter.
type Typed[T any] struct {
	mu      sync.Mutex
	adapter Adapter
}

// NewTyped creates a typed view of adapter. A nil adapter gets a fresh
// MemoryAdapter.
func NewTyped[T any](adapter Adapter) *Typed[T] {
	if adapter == nil {
		adapter = NewMemoryAdapter()
	}
	return &Typed[T]{adapter: adapter}
}

// Get returns the value stored under key. A missing key yields the zero
// value and false.
func (s *Typed[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var v T
	raw, ok, err := s.adapter.Get(ctx, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, &SerializationError{Key: key, Err: err}
	}
	return v, true, nil
}

// Set replaces the value stored under key.
func (s *Typed[T]) Set(ctx context.Context, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &SerializationError{Key: key, Err: err}
	}
	return s.adapter.Set(ctx, key, raw)
}

// Update applies fn to the value under key, starting from the zero value
// when absent, and stores the result. Updates through the same Typed are
// serialized.
func (s *Typed[T]) Update(ctx context.Context, key string, fn func(*T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, _, err := s.Get(ctx, key)
	if err != nil {
		return v, err
	}
	fn(&v)
	return v, s.Set(ctx, key, v)
}

// Delete removes the value under key.
func (s *Typed[T]) Delete(ctx context.Context, key string) error {
	return s.adapter.Delete(ctx, key)
}

// Adapter returns the underlying adapter.
func (s *Typed[T]) Adapter() Adapter {
	return s.adapter
}
