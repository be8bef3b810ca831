package render

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2ui"
)

var (
	// ErrUnknownWidget is returned for input addressed to an id that was
	// not rendered.
	ErrUnknownWidget = errors.New("unknown widget")
	// ErrReadOnly is returned for input addressed to a widget that does not
	// accept it.
	ErrReadOnly = errors.New("widget is read-only")
	// ErrInvalidValue is returned when an input value has the wrong type or
	// is outside the widget's domain.
	ErrInvalidValue = errors.New("invalid widget value")
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// Renderer holds the widget model of the latest render and the local widget
// values edited since.
type Renderer struct {
	logger *slog.Logger

	widgets  map[string]*Widget
	order    []string
	values   map[string]any
	sketches map[string]genui.Image
	models   map[string]a2ui.DataModel
	legacy   []string
}

// New creates an empty renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.reset()
	return r
}

func (r *Renderer) reset() {
	r.widgets = make(map[string]*Widget)
	r.order = nil
	r.values = make(map[string]any)
	r.sketches = make(map[string]genui.Image)
	r.models = make(map[string]a2ui.DataModel)
	r.legacy = nil
}

// Render rebuilds the widget model from surfaces, one panel per surface in
// order. Local values are re-seeded from each surface's data model.
func (r *Renderer) Render(surfaces []a2ui.Surface) []Panel {
	r.reset()
	panels := make([]Panel, 0, len(surfaces))
	for _, s := range surfaces {
		panels = append(panels, r.renderSurface(s))
	}
	return panels
}

func (r *Renderer) renderSurface(s a2ui.Surface) Panel {
	r.models[s.ID] = s.DataModel
	b := &buildContext{r: r, surface: s}
	panel := Panel{SurfaceID: s.ID}

	var tops []string
	if _, ok := s.Component(s.Root); ok {
		tops = []string{s.Root}
	} else {
		tops = topLevel(s)
	}

	path := make(map[string]bool)
	for _, id := range tops {
		if w := r.build(b, id, path); w != nil {
			panel.Widgets = append(panel.Widgets, w)
		}
	}
	return panel
}

// topLevel returns the ids of components no other component references as
// a child, in first-seen order.
func topLevel(s a2ui.Surface) []string {
	referenced := make(map[string]bool)
	for _, c := range s.Components {
		for _, child := range c.ChildIDs() {
			referenced[child] = true
		}
	}

	seen := make(map[string]bool)
	var ids []string
	for _, c := range s.Components {
		if referenced[c.ID] || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		ids = append(ids, c.ID)
	}
	return ids
}

func (r *Renderer) build(b *buildContext, id string, path map[string]bool) *Widget {
	c, ok := b.surface.Component(id)
	if !ok {
		r.logger.Debug("missing child component", "surface_id", b.surface.ID, "component_id", id)
		return nil
	}
	if path[id] {
		r.logger.Warn("component cycle cut", "surface_id", b.surface.ID, "component_id", id)
		return nil
	}
	path[id] = true
	defer delete(path, id)

	var w *Widget
	if _, isUnknown := c.Props.(a2ui.Unknown); isUnknown || c.Props == nil {
		w = unsupported(b, c)
	} else if build, ok := builders[c.Kind()]; ok {
		w = build(b, c)
	} else {
		w = unsupported(b, c)
	}
	r.register(w)

	if w.Kind == KindGroup {
		for _, childID := range c.ChildIDs() {
			if child := r.build(b, childID, path); child != nil {
				w.Children = append(w.Children, child)
			}
		}
	}
	return w
}

func (r *Renderer) register(w *Widget) {
	if _, dup := r.widgets[w.ID]; !dup && w.Interactive() {
		r.order = append(r.order, w.ID)
	}
	r.widgets[w.ID] = w
}

// Widget returns a copy of the rendered widget with the given id.
func (r *Renderer) Widget(id string) (Widget, bool) {
	w, ok := r.widgets[id]
	if !ok {
		return Widget{}, false
	}
	return *w, true
}

// Value returns the current local value of a widget.
func (r *Renderer) Value(id string) (any, bool) {
	v, ok := r.values[id]
	return v, ok
}

// Interactive returns the ids of focusable widgets in tree order.
func (r *Renderer) Interactive() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Input sets a widget's local value. Numbers are clamped to a slider's
// range; select values must name an option; colors must be hex strings.
// Sketch widgets accept a genui.Image or base64/data URL string, an empty
// value clears the sketch.
func (r *Renderer) Input(id string, v any) error {
	w, ok := r.widgets[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWidget, id)
	}

	switch w.Kind {
	case KindSlider:
		n, ok := a2ui.AsNumber(v)
		if !ok || math.IsNaN(n) {
			return invalid(id, v)
		}
		r.values[id] = clamp(n, w.Min, w.Max)
	case KindTextField:
		s, ok := a2ui.AsString(v)
		if !ok {
			return invalid(id, v)
		}
		r.values[id] = s
	case KindSelect:
		s, ok := a2ui.AsString(v)
		if !ok || !w.hasOption(s) {
			return invalid(id, v)
		}
		r.values[id] = s
	case KindSwitch:
		on, ok := a2ui.AsBool(v)
		if !ok {
			return invalid(id, v)
		}
		r.values[id] = on
	case KindColor:
		s, _ := a2ui.AsString(v)
		hex, ok := normalizeColor(s)
		if !ok {
			return invalid(id, v)
		}
		r.values[id] = hex
	case KindSketch:
		return r.inputSketch(w, v)
	default:
		return fmt.Errorf("%w: %s (%s)", ErrReadOnly, id, w.Kind)
	}
	return nil
}

func (r *Renderer) inputSketch(w *Widget, v any) error {
	var img genui.Image
	switch x := v.(type) {
	case nil:
	case genui.Image:
		img = x
	case *genui.Image:
		if x != nil {
			img = *x
		}
	case string:
		if strings.TrimSpace(x) != "" {
			decoded, err := genui.DecodeImage("", x)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidValue, w.ID, err)
			}
			img = decoded
		}
	default:
		return invalid(w.ID, v)
	}

	if img.Empty() {
		delete(r.sketches, w.ID)
		return nil
	}
	r.sketches[w.ID] = img
	return nil
}

func invalid(id string, v any) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidValue, id, v)
}

// hueStep is the hue rotation, in degrees, of one color adjustment step.
const hueStep = 15

// Adjust nudges a widget by step units: sliders move by their step, selects
// cycle through options, switches toggle and colors rotate their hue.
func (r *Renderer) Adjust(id string, step int) error {
	w, ok := r.widgets[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWidget, id)
	}
	if step == 0 {
		return nil
	}

	switch w.Kind {
	case KindSlider:
		n, _ := a2ui.AsNumber(r.values[id])
		r.values[id] = clamp(n+float64(step)*w.Step, w.Min, w.Max)
	case KindSelect:
		if len(w.Options) == 0 {
			return nil
		}
		s, _ := r.values[id].(string)
		i := w.optionIndex(s)
		if i < 0 {
			i = 0
		}
		n := len(w.Options)
		r.values[id] = w.Options[((i+step)%n+n)%n].Value
	case KindSwitch:
		on, _ := r.values[id].(bool)
		r.values[id] = !on
	case KindColor:
		s, _ := r.values[id].(string)
		col, err := colorful.Hex(s)
		if err != nil {
			col, _ = colorful.Hex(DefaultColor)
		}
		h, c, l := col.Hcl()
		h = math.Mod(h+float64(step*hueStep)+360, 360)
		r.values[id] = colorful.Hcl(h, c, l).Clamped().Hex()
	default:
		return fmt.Errorf("%w: %s (%s)", ErrReadOnly, id, w.Kind)
	}
	return nil
}

// WidgetValues returns the current scalar widget values keyed by component
// id. Buttons and sketches are excluded.
func (r *Renderer) WidgetValues() map[string]any {
	out := make(map[string]any, len(r.values))
	for id, v := range r.values {
		if w, ok := r.widgets[id]; ok && w.valued() {
			out[id] = v
		}
	}
	return out
}

// Sketches returns the committed sketches keyed by component id.
func (r *Renderer) Sketches() map[string]genui.Image {
	return maps.Clone(r.sketches)
}

// Action returns the user action a button sends, with its context resolved.
// Context entries bound to a path prefer the local value of a widget bound
// to the same path on that surface, then the data model.
func (r *Renderer) Action(id string) (a2ui.UserAction, bool) {
	w, ok := r.widgets[id]
	if !ok || w.Kind != KindButton || w.Action == nil {
		return a2ui.UserAction{}, false
	}

	action := a2ui.UserAction{
		Name:              w.Action.Name,
		SurfaceID:         w.Surface,
		SourceComponentID: w.ID,
	}
	if len(w.Action.Context) > 0 {
		action.Context = make(map[string]any, len(w.Action.Context))
		for _, entry := range w.Action.Context {
			action.Context[entry.Key] = r.resolveContext(w.Surface, entry.Value)
		}
	}
	return action, true
}

func (r *Renderer) resolveContext(surfaceID string, v a2ui.BoundValue) any {
	if v.Path != "" {
		for _, id := range r.order {
			w := r.widgets[id]
			if w.Surface == surfaceID && w.Binding == v.Path {
				if value, ok := r.values[id]; ok {
					return value
				}
			}
		}
	}
	return v.Resolve(r.models[surfaceID])
}
