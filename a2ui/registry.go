package a2ui

import (
	"maps"
)

// Surface is an independently addressable UI region: a component tree bound
// to its own data model.
type Surface struct {
	ID         string
	Root       string
	Components []Component
	DataModel  DataModel
}

// Component returns the component with the given id. When ids repeat, the
// last occurrence wins.
func (s Surface) Component(id string) (Component, bool) {
	for i := len(s.Components) - 1; i >= 0; i-- {
		if s.Components[i].ID == id {
			return s.Components[i], true
		}
	}
	return Component{}, false
}

func (s *Surface) clone() Surface {
	return Surface{
		ID:         s.ID,
		Root:       s.Root,
		Components: cloneComponents(s.Components),
		DataModel:  s.DataModel.Clone(),
	}
}

// Registry maps surface ids to surfaces. Surfaces are created implicitly by
// the first message that names them and destroyed only by ClearAll.
type Registry struct {
	order    []string
	surfaces map[string]*Surface
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]*Surface)}
}

func (r *Registry) surface(id string) *Surface {
	if s, ok := r.surfaces[id]; ok {
		return s
	}
	s := &Surface{ID: id, DataModel: make(DataModel)}
	r.surfaces[id] = s
	r.order = append(r.order, id)
	return s
}

// ClearAll removes every surface.
func (r *Registry) ClearAll() {
	r.order = nil
	r.surfaces = make(map[string]*Surface)
}

// BeginRendering ensures the surface exists and records its root when given.
func (r *Registry) BeginRendering(surfaceID, root string) {
	s := r.surface(surfaceID)
	if root != "" {
		s.Root = root
	}
}

// ApplySurfaceUpdate replaces the surface's component tree wholesale.
func (r *Registry) ApplySurfaceUpdate(surfaceID string, components []Component) {
	r.surface(surfaceID).Components = cloneComponents(components)
}

// ApplyDataModelUpdate sets each entry's key in the surface's data model.
// Later entries in the list win.
func (r *Registry) ApplyDataModelUpdate(surfaceID string, entries []DataEntry) {
	dm := r.surface(surfaceID).DataModel
	for _, e := range entries {
		dm.Set(e.Key, cloneValue(e.Value))
	}
}

// MergeAt merges entries into the map stored under the first segment of
// path. A root path ("" or "/") behaves like ApplyDataModelUpdate.
func (r *Registry) MergeAt(surfaceID, path string, entries []DataEntry) {
	key := pathKey(path)
	if key == "" {
		r.ApplyDataModelUpdate(surfaceID, entries)
		return
	}

	dm := r.surface(surfaceID).DataModel
	nested, _ := dm[key].(map[string]any)
	nested = maps.Clone(nested)
	if nested == nil {
		nested = make(map[string]any, len(entries))
	}
	for _, e := range entries {
		nested[e.Key] = cloneValue(e.Value)
	}
	dm[key] = nested
}

// Surface returns a deep copy of a single surface.
func (r *Registry) Surface(id string) (Surface, bool) {
	s, ok := r.surfaces[id]
	if !ok {
		return Surface{}, false
	}
	return s.clone(), true
}

// Surfaces returns deep copies of all surfaces in creation order. Mutating
// the result does not affect the registry.
func (r *Registry) Surfaces() []Surface {
	out := make([]Surface, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.surfaces[id].clone())
	}
	return out
}

// Len returns the number of surfaces.
func (r *Registry) Len() int {
	return len(r.order)
}
