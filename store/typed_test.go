package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type state struct {
	Prompt  string         `json:"prompt"`
	Turns   int            `json:"turns"`
	Widgets map[string]any `json:"widgets,omitempty"`
}

func TestTyped_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewTyped[state](nil)

	_, ok, err := s.Get(ctx, "ctx-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "ctx-1", state{Prompt: "a cat", Turns: 1}))
	got, ok, err := s.Get(ctx, "ctx-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, state{Prompt: "a cat", Turns: 1}, got)

	require.NoError(t, s.Delete(ctx, "ctx-1"))
	_, ok, _ = s.Get(ctx, "ctx-1")
	assert.False(t, ok)
}

func TestTyped_Update(t *testing.T) {
	ctx := context.Background()
	s := NewTyped[state](NewMemoryAdapter())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, "k", func(st *state) { st.Turns++ })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 20, got.Turns)
}

func TestTyped_SerializationErrors(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()
	require.NoError(t, adapter.Set(ctx, "bad", json.RawMessage(`{"turns":"many"}`)))

	s := NewTyped[state](adapter)
	_, _, err := s.Get(ctx, "bad")
	var se *SerializationError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "bad", se.Key)

	_, err = s.Update(ctx, "bad", func(*state) {})
	assert.ErrorAs(t, err, &se)

	unencodable := NewTyped[map[string]any](adapter)
	err = unencodable.Set(ctx, "fn", map[string]any{"f": func() {}})
	assert.ErrorAs(t, err, &se)
	assert.Same(t, adapter, s.Adapter())
}
