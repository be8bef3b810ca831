package backend

import (
	"log/slog"
	"strings"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2ui"
	"github.com/spetersoncode/genui/render"
)

// Surface layout constants.
const (
	SurfaceID      = "image-generation"
	RootID         = "root"
	ImageID        = "generated-image"
	ImageKey       = "generated_image"
	ImagePath      = "/" + ImageKey
	ApplyButtonID  = "apply-button"
	applyLabelID   = "apply-button-label"
	applyLabelText = "Apply adjustments"
)

var one = 1

// BuildSurface lays out the generated image and the planned widgets on one
// surface. Widget values come from values, keyed as in the data model
// ("<id>" or "<id>.<field>"), falling back to the widget defaults. Widget
// types without a component mapping are skipped.
func BuildSurface(img genui.Image, widgets []a2ui.LegacyWidget, values map[string]any, logger *slog.Logger) []a2ui.Message {
	if logger == nil {
		logger = slog.Default()
	}

	b := &surfaceBuilder{values: values}
	b.add(ImageID, a2ui.Image{
		URL:       a2ui.Path(ImagePath),
		Fit:       "contain",
		UsageHint: "mediumFeature",
	})
	b.entries = append(b.entries, a2ui.Entry(ImageKey, a2ui.DataURL(img)))

	children := []string{ImageID}
	for _, w := range widgets {
		if w.ID == "" {
			continue
		}
		if !b.widget(w) {
			logger.Warn("skipping widget without component mapping", "widget", w.ID, "type", w.Type)
			continue
		}
		children = append(children, w.ID)
	}

	if len(b.bound) > 0 {
		ctx := make([]a2ui.ContextEntry, 0, len(b.bound))
		for _, key := range b.bound {
			ctx = append(ctx, a2ui.ContextEntry{Key: key, Value: a2ui.Path("/" + key)})
		}
		b.add(applyLabelID, a2ui.Text{Text: a2ui.String(applyLabelText)})
		b.add(ApplyButtonID, a2ui.Button{
			Child:   applyLabelID,
			Primary: true,
			Action:  a2ui.Action{Name: a2ui.ActionUpdateWidgets, Context: ctx},
		})
		children = append(children, ApplyButtonID)
	}

	root := a2ui.Component{ID: RootID, Props: a2ui.Column{Children: a2ui.Children{ExplicitList: children}}}
	return []a2ui.Message{
		a2ui.BeginRendering{SurfaceID: SurfaceID, Root: RootID},
		a2ui.SurfaceUpdate{SurfaceID: SurfaceID, Components: append([]a2ui.Component{root}, b.components...)},
		a2ui.DataModelUpdate{SurfaceID: SurfaceID, Contents: b.entries},
	}
}

type surfaceBuilder struct {
	values     map[string]any
	components []a2ui.Component
	entries    []a2ui.DataEntry
	// bound lists data model keys of interactive widgets in layout order.
	bound []string
}

func (b *surfaceBuilder) add(id string, props a2ui.Props) {
	b.components = append(b.components, a2ui.Component{ID: id, Props: props})
}

// bind records the current value of key, seeded from fallback.
func (b *surfaceBuilder) bind(key string, fallback any) a2ui.BoundValue {
	v, ok := b.values[key]
	if !ok || v == nil {
		v = fallback
	}
	if v != nil {
		b.entries = append(b.entries, a2ui.Entry(key, v))
	}
	b.bound = append(b.bound, key)
	return a2ui.Path("/" + key)
}

func (b *surfaceBuilder) slider(id, label string, lo, hi float64, fallback any) a2ui.Slider {
	return a2ui.Slider{
		Label:    a2ui.String(label),
		Value:    b.bind(id, fallback),
		MinValue: a2ui.Number(lo),
		MaxValue: a2ui.Number(hi),
	}
}

func (b *surfaceBuilder) choice(id, label string, options []string, fallback any) a2ui.MultipleChoice {
	mc := a2ui.MultipleChoice{
		Label:                a2ui.String(label),
		Selections:           b.bind(id, fallback),
		Options:              make([]a2ui.ChoiceOption, 0, len(options)),
		MaxAllowedSelections: &one,
	}
	for _, o := range options {
		mc.Options = append(mc.Options, a2ui.ChoiceOption{Label: a2ui.String(a2ui.Label(o)), Value: o})
	}
	return mc
}

func (b *surfaceBuilder) widget(w a2ui.LegacyWidget) bool {
	props := w.Properties
	label := w.Label
	if label == "" {
		label = a2ui.Label(w.ID)
	}
	number := func(key string, fallback float64) float64 {
		if n, ok := a2ui.AsNumber(props[key]); ok {
			return n
		}
		return fallback
	}

	switch w.Type {
	case render.LegacySlider:
		lo, hi := number("min", 0), number("max", 100)
		b.add(w.ID, b.slider(w.ID, label, lo, hi, props["default"]))

	case render.LegacyDropdown:
		var options []string
		if opts, ok := props["options"].([]any); ok {
			for _, o := range opts {
				if s, ok := a2ui.AsString(o); ok && s != "" {
					options = append(options, s)
				}
			}
		}
		fallback := props["default"]
		if fallback == nil && len(options) > 0 {
			fallback = options[0]
		}
		b.add(w.ID, b.choice(w.ID, label, options, fallback))

	case render.LegacyTextInput:
		fallback := props["default"]
		if fallback == nil {
			fallback = ""
		}
		b.add(w.ID, a2ui.TextField{Label: a2ui.String(label), Text: b.bind(w.ID, fallback)})

	case render.LegacyToggle:
		fallback := props["default"]
		if fallback == nil {
			fallback = false
		}
		b.add(w.ID, a2ui.CheckBox{Label: a2ui.String(label), Value: b.bind(w.ID, fallback)})

	case render.LegacyColorPicker:
		fallback := props["default"]
		if fallback == nil {
			fallback = render.DefaultColor
		}
		b.add(w.ID, a2ui.ColorPicker{Label: a2ui.String(label), Value: b.bind(w.ID, fallback)})

	case render.LegacySketchCanvas, render.LegacySketchBoard:
		b.add(w.ID, a2ui.SketchCanvas{
			Label:  a2ui.String(label),
			Width:  int(number("width", 512)),
			Height: int(number("height", 512)),
		})

	case render.LegacyRangeDual:
		lo, hi := number("min", 0), number("max", 100)
		minID, maxID := w.ID+".min", w.ID+".max"
		b.add(minID, b.slider(minID, "Min", lo, hi, orDefault(props["defaultMin"], lo)))
		b.add(maxID, b.slider(maxID, "Max", lo, hi, orDefault(props["defaultMax"], hi)))
		b.add(w.ID, a2ui.Row{Children: a2ui.Children{ExplicitList: []string{minID, maxID}}})

	case render.LegacyColorToneControl:
		ids := make([]string, 0, 4)
		for _, f := range []struct {
			field  string
			hi     float64
			preset float64
		}{
			{"hue", 360, DefaultHue},
			{"saturation", 100, DefaultSaturation},
			{"lightness", 100, DefaultLightness},
		} {
			id := w.ID + "." + f.field
			b.add(id, b.slider(id, a2ui.Label(f.field), 0, f.hi, orDefault(props[f.field], f.preset)))
			ids = append(ids, id)
		}
		tempID := w.ID + ".temperature"
		b.add(tempID, b.choice(tempID, "Temperature", []string{"warm", "neutral", "cool"}, orDefault(props["temperature"], DefaultTemperature)))
		ids = append(ids, tempID)
		b.add(w.ID, a2ui.Card{Child: w.ID + "-fields"})
		b.add(w.ID+"-fields", a2ui.Column{Children: a2ui.Children{ExplicitList: ids}})

	default:
		return false
	}
	return true
}

func orDefault(v any, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}

// Normalize repairs common defects of surfaces produced by language models:
// duplicate component ids keep the last definition at the first position,
// images without a source show the generated image, relative binding paths
// gain a leading "/", and sliders without value or range get the size
// binding and the size bounds.
func Normalize(msgs []a2ui.Message) []a2ui.Message {
	out := make([]a2ui.Message, len(msgs))
	for i, m := range msgs {
		su, ok := m.(a2ui.SurfaceUpdate)
		if !ok {
			out[i] = m
			continue
		}
		su.Components = dedupe(su.Components)
		for j, c := range su.Components {
			su.Components[j].Props = normalizeProps(c.Props)
		}
		out[i] = su
	}
	return out
}

func dedupe(components []a2ui.Component) []a2ui.Component {
	index := make(map[string]int, len(components))
	out := make([]a2ui.Component, 0, len(components))
	for _, c := range components {
		if i, ok := index[c.ID]; ok {
			out[i] = c
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}

func normalizeProps(p a2ui.Props) a2ui.Props {
	switch v := p.(type) {
	case a2ui.Image:
		if v.URL.IsZero() && len(v.Sources) == 0 {
			v.URL = a2ui.Path(ImagePath)
		}
		v.URL = absolute(v.URL)
		for i := range v.Sources {
			if v.Sources[i].URI.IsZero() {
				v.Sources[i].URI = a2ui.Path(ImagePath)
			}
			v.Sources[i].URI = absolute(v.Sources[i].URI)
		}
		return v
	case a2ui.Slider:
		if v.Value.IsZero() {
			v.Value = a2ui.Path("/size")
		}
		v.Value = absolute(v.Value)
		if v.MinValue.IsZero() {
			v.MinValue = a2ui.Number(MinSize)
		}
		if v.MaxValue.IsZero() {
			v.MaxValue = a2ui.Number(MaxSize)
		}
		return v
	default:
		return p
	}
}

func absolute(b a2ui.BoundValue) a2ui.BoundValue {
	if b.Path != "" && !strings.HasPrefix(b.Path, "/") {
		b.Path = "/" + b.Path
	}
	return b
}
