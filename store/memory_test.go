package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapter_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	require.NoError(t, adapter.Set(ctx, "key1", json.RawMessage(`"value1"`)))

	raw, ok, err := adapter.Get(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, json.RawMessage(`"value1"`), raw)

	_, ok, err = adapter.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, adapter.Delete(ctx, "key1"))
	require.NoError(t, adapter.Delete(ctx, "missing"))
	n, err := adapter.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryAdapter_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	value := json.RawMessage(`"abc"`)
	require.NoError(t, adapter.Set(ctx, "k", value))
	value[1] = 'z'

	raw, _, _ := adapter.Get(ctx, "k")
	raw[2] = 'z'

	again, _, _ := adapter.Get(ctx, "k")
	assert.Equal(t, json.RawMessage(`"abc"`), again)
}

func TestMemoryAdapter_KeysAndClear(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()
	for _, k := range []string{"b", "a", "c"} {
		require.NoError(t, adapter.Set(ctx, k, json.RawMessage(`1`)))
	}

	keys, err := adapter.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	require.NoError(t, adapter.Clear(ctx))
	keys, err = adapter.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMemoryAdapter_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	adapter := NewMemoryAdapter(WithTTL(time.Minute), WithClock(func() time.Time { return now }))

	require.NoError(t, adapter.Set(ctx, "old", json.RawMessage(`1`)))
	now = now.Add(30 * time.Second)
	require.NoError(t, adapter.Set(ctx, "new", json.RawMessage(`2`)))

	now = now.Add(45 * time.Second)
	_, ok, _ := adapter.Get(ctx, "old")
	assert.False(t, ok)
	_, ok, _ = adapter.Get(ctx, "new")
	assert.True(t, ok)

	keys, _ := adapter.Keys(ctx)
	assert.Equal(t, []string{"new"}, keys)

	assert.Equal(t, 1, adapter.Sweep())
	assert.Equal(t, 0, adapter.Sweep())
}

func TestMemoryAdapter_Concurrent(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = adapter.Set(ctx, "shared", json.RawMessage(`1`))
			_, _, _ = adapter.Get(ctx, "shared")
			_, _ = adapter.Keys(ctx)
		}()
	}
	wg.Wait()

	n, err := adapter.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
