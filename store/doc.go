// Package store provides in-process key/value storage for agent state.
//
// An Adapter holds JSON-encoded values; MemoryAdapter keeps them in a map
// and can expire idle entries. Typed wraps an adapter with a value type so
// callers read and update structs instead of raw JSON:
//
//	states := store.NewTyped[ContextState](store.NewMemoryAdapter(store.WithTTL(time.Hour)))
//	st, _, err := states.Get(ctx, contextID)
//	_, err = states.Update(ctx, contextID, func(s *ContextState) { s.Prompt = prompt })
package store
