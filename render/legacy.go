package render

import (
	"slices"
	"strings"

	"github.com/spetersoncode/genui/a2ui"
)

// LegacySurfaceID is the panel id of widgets built from legacy descriptors.
const LegacySurfaceID = "legacy"

// Legacy widget types understood by FromLegacy.
const (
	LegacySlider           = "slider"
	LegacyDropdown         = "dropdown"
	LegacyTextInput        = "text-input"
	LegacyToggle           = "toggle"
	LegacyColorPicker      = "color-picker"
	LegacySketchCanvas     = "sketch-canvas"
	LegacySketchBoard      = "sketch-board"
	LegacyRangeDual        = "range-dual"
	LegacyColorToneControl = "color-tone-control"
)

// Temperature options of the color tone control.
var toneTemperatures = []string{"warm", "neutral", "cool"}

// FromLegacy adds widgets built from legacy descriptors to the current
// model and returns them as one panel. Composite descriptors expand to child
// widgets with ids "<id>.<field>". Call it after Render for the same reply.
func (r *Renderer) FromLegacy(widgets []a2ui.LegacyWidget) Panel {
	panel := Panel{SurfaceID: LegacySurfaceID}
	for _, lw := range widgets {
		if lw.ID == "" {
			lw.ID = lw.Type
		}
		w := r.buildLegacy(lw)
		w.Legacy = lw.Type
		w.Walk(r.register)
		if !slices.Contains(r.legacy, lw.ID) {
			r.legacy = append(r.legacy, lw.ID)
		}
		panel.Widgets = append(panel.Widgets, w)
	}
	return panel
}

type legacyProps map[string]any

func (p legacyProps) number(key string, fallback float64) float64 {
	if n, ok := a2ui.AsNumber(p[key]); ok {
		return n
	}
	return fallback
}

func (p legacyProps) str(key, fallback string) string {
	if s, ok := a2ui.AsString(p[key]); ok && s != "" {
		return s
	}
	return fallback
}

func (r *Renderer) buildLegacy(lw a2ui.LegacyWidget) *Widget {
	props := legacyProps(lw.Properties)
	label := lw.Label
	if label == "" {
		label = a2ui.Label(lw.ID)
	}

	switch lw.Type {
	case LegacySlider:
		lo, hi := props.number("min", 0), props.number("max", 100)
		return r.legacySlider(lw.ID, label, lo, hi, props.number("default", lo), props.number("step", 1))

	case LegacyDropdown:
		w := &Widget{ID: lw.ID, Kind: KindSelect, Label: label, Surface: LegacySurfaceID}
		if opts, ok := lw.Properties["options"].([]any); ok {
			for _, o := range opts {
				if s, ok := a2ui.AsString(o); ok {
					w.Options = append(w.Options, Choice{Label: s, Value: s})
				}
			}
		}
		value := ""
		if len(w.Options) > 0 {
			value = w.Options[0].Value
		}
		if d := props.str("default", ""); w.hasOption(d) {
			value = d
		}
		r.values[lw.ID] = value
		return w

	case LegacyTextInput:
		w := &Widget{ID: lw.ID, Kind: KindTextField, Label: label, Surface: LegacySurfaceID}
		r.values[lw.ID] = props.str("default", props.str("value", ""))
		return w

	case LegacyToggle:
		w := &Widget{ID: lw.ID, Kind: KindSwitch, Label: label, Surface: LegacySurfaceID}
		on, _ := a2ui.AsBool(lw.Properties["default"])
		r.values[lw.ID] = on
		return w

	case LegacyColorPicker:
		w := &Widget{ID: lw.ID, Kind: KindColor, Label: label, Surface: LegacySurfaceID}
		value := DefaultColor
		if hex, ok := normalizeColor(props.str("default", "")); ok {
			value = hex
		}
		r.values[lw.ID] = value
		return w

	case LegacySketchCanvas, LegacySketchBoard:
		return &Widget{ID: lw.ID, Kind: KindSketch, Label: label, Surface: LegacySurfaceID}

	case LegacyRangeDual:
		lo, hi := props.number("min", 0), props.number("max", 100)
		step := props.number("step", 1)
		return r.legacyGroup(lw.ID, label,
			r.legacySlider(lw.ID+".min", "Min", lo, hi, props.number("defaultMin", lo), step),
			r.legacySlider(lw.ID+".max", "Max", lo, hi, props.number("defaultMax", hi), step),
		)

	case LegacyColorToneControl:
		temperature := &Widget{ID: lw.ID + ".temperature", Kind: KindSelect, Label: "Temperature", Surface: LegacySurfaceID}
		for _, t := range toneTemperatures {
			temperature.Options = append(temperature.Options, Choice{Label: a2ui.Label(t), Value: t})
		}
		temp := props.str("temperature", "neutral")
		if !temperature.hasOption(temp) {
			temp = "neutral"
		}
		r.values[temperature.ID] = temp

		return r.legacyGroup(lw.ID, label,
			r.legacySlider(lw.ID+".hue", "Hue", 0, 360, props.number("hue", 180), 5),
			r.legacySlider(lw.ID+".saturation", "Saturation", 0, 100, props.number("saturation", 50), 1),
			r.legacySlider(lw.ID+".lightness", "Lightness", 0, 100, props.number("lightness", 50), 1),
			temperature,
		)

	default:
		return &Widget{
			ID:      lw.ID,
			Kind:    KindUnsupported,
			Text:    "unsupported widget: " + lw.Type,
			Surface: LegacySurfaceID,
		}
	}
}

func (r *Renderer) legacySlider(id, label string, lo, hi, value, step float64) *Widget {
	if hi < lo {
		hi = lo
	}
	if step <= 0 {
		step = 1
	}
	r.values[id] = clamp(value, lo, hi)
	return &Widget{ID: id, Kind: KindSlider, Label: label, Min: lo, Max: hi, Step: step, Surface: LegacySurfaceID}
}

func (r *Renderer) legacyGroup(id, label string, children ...*Widget) *Widget {
	return &Widget{ID: id, Kind: KindGroup, Layout: "card", Label: label, Children: children, Surface: LegacySurfaceID}
}

// LegacyParts returns the current values of legacy widgets in the form
// legacy agents expect back: one descriptor per widget whose properties
// carry {"value": v}, the composite fields, or {"sketch": base64}. Sketch
// widgets without a committed sketch are omitted.
func (r *Renderer) LegacyParts() []a2ui.LegacyWidget {
	var out []a2ui.LegacyWidget
	for _, id := range r.legacy {
		w, ok := r.widgets[id]
		if !ok {
			continue
		}
		props := make(map[string]any)
		switch {
		case w.Kind == KindGroup:
			w.Walk(func(child *Widget) {
				if v, ok := r.values[child.ID]; ok && child != w {
					props[strings.TrimPrefix(child.ID, id+".")] = v
				}
			})
		case w.Kind == KindSketch:
			img, ok := r.sketches[id]
			if !ok {
				continue
			}
			props["sketch"] = img.Base64()
		default:
			v, ok := r.values[id]
			if !ok {
				continue
			}
			props["value"] = v
		}
		out = append(out, a2ui.LegacyWidget{ID: id, Type: w.Legacy, Properties: props})
	}
	return out
}
