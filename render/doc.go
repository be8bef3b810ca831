// Package render turns A2UI surfaces into an interactive widget model.
//
// A Renderer builds one Panel per surface by walking the component tree and
// dispatching on component kind. Each widget derives its initial value from
// the surface's data model, falling back to a per-kind default. User edits
// go through Input and Adjust and only touch the renderer's local value map;
// the data model is refreshed by the next agent response.
//
// WidgetValues returns the scalar values keyed by component id for the next
// request. Sketches are composite and returned separately by Sketches.
//
// Legacy agents that send flat {"a2ui": {...}} widget descriptors are
// adapted into the same model by FromLegacy.
//
// A Renderer is owned by one conversation and is not safe for concurrent
// use.
package render
