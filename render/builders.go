package render

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2ui"
)

// builder turns one component into a widget and seeds its runtime value.
type builder func(b *buildContext, c a2ui.Component) *Widget

// builders is the component kind dispatch table. Kinds missing from it
// render as unsupported.
var builders = map[a2ui.Kind]builder{
	a2ui.KindText:           buildText,
	a2ui.KindImage:          buildImage,
	a2ui.KindSlider:         buildSlider,
	a2ui.KindTextField:      buildTextField,
	a2ui.KindMultipleChoice: buildSelect,
	a2ui.KindCheckBox:       buildSwitch,
	a2ui.KindColorPicker:    buildColor,
	a2ui.KindSketchCanvas:   buildSketch,
	a2ui.KindButton:         buildButton,
	a2ui.KindDivider:        buildDivider,
	a2ui.KindColumn:         buildGroup("column"),
	a2ui.KindRow:            buildGroup("row"),
	a2ui.KindList:           buildGroup("list"),
	a2ui.KindCard:           buildGroup("card"),
}

type buildContext struct {
	r       *Renderer
	surface a2ui.Surface
}

func (b *buildContext) widget(c a2ui.Component, kind Kind) *Widget {
	return &Widget{ID: c.ID, Kind: kind, Surface: b.surface.ID}
}

func (b *buildContext) resolve(v a2ui.BoundValue) any {
	return v.Resolve(b.surface.DataModel)
}

func (b *buildContext) text(v a2ui.BoundValue) string {
	return v.Text(b.surface.DataModel)
}

func (b *buildContext) number(v a2ui.BoundValue, fallback float64) float64 {
	if n, ok := a2ui.AsNumber(b.resolve(v)); ok {
		return n
	}
	return fallback
}

func unsupported(b *buildContext, c a2ui.Component) *Widget {
	name := string(c.Kind())
	if name == "" {
		name = "component without kind"
	}
	w := b.widget(c, KindUnsupported)
	w.Text = "unsupported widget: " + name
	return w
}

func buildText(b *buildContext, c a2ui.Component) *Widget {
	p := c.Props.(a2ui.Text)
	w := b.widget(c, KindText)
	w.Text = b.text(p.Text)
	w.Hint = p.UsageHint
	return w
}

func buildImage(b *buildContext, c a2ui.Component) *Widget {
	p := c.Props.(a2ui.Image)
	w := b.widget(c, KindImage)

	src, mime := p.Source()
	s, _ := a2ui.AsString(b.resolve(src))
	if s == "" {
		return w
	}
	if strings.HasPrefix(s, "data:") {
		img, err := genui.DecodeImage(mime, s)
		if err == nil {
			w.Image = &img
			return w
		}
		b.r.logger.Warn("undecodable image source", "component_id", c.ID, "error", err)
		return w
	}
	w.ImageURL = s
	return w
}

func buildSlider(b *buildContext, c a2ui.Component) *Widget {
	p := c.Props.(a2ui.Slider)
	w := b.widget(c, KindSlider)
	w.Label = b.text(p.Label)
	w.Binding = p.Value.Path
	w.Min = b.number(p.MinValue, 0)
	w.Max = b.number(p.MaxValue, 100)
	if w.Max < w.Min {
		w.Max = w.Min
	}
	w.Step = 1
	if span := w.Max - w.Min; span > 100 {
		w.Step = math.Round(span / 64)
	}

	b.r.values[c.ID] = clamp(b.number(p.Value, w.Min), w.Min, w.Max)
	return w
}

func buildTextField(b *buildContext, c a2ui.Component) *Widget {
	p := c.Props.(a2ui.TextField)
	w := b.widget(c, KindTextField)
	w.Label = b.text(p.Label)
	w.Binding = p.Text.Path

	b.r.values[c.ID] = b.text(p.Text)
	return w
}

func buildSelect(b *buildContext, c a2ui.Component) *Widget {
	p := c.Props.(a2ui.MultipleChoice)
	w := b.widget(c, KindSelect)
	w.Label = b.text(p.Label)
	w.Binding = p.Selections.Path
	for _, o := range p.Options {
		label := b.text(o.Label)
		if label == "" {
			label = o.Value
		}
		w.Options = append(w.Options, Choice{Label: label, Value: o.Value})
	}

	value := ""
	if len(w.Options) > 0 {
		value = w.Options[0].Value
	}
	if selected, ok := firstSelection(b.resolve(p.Selections)); ok && w.hasOption(selected) {
		value = selected
	}
	b.r.values[c.ID] = value
	return w
}

func firstSelection(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, s != ""
	case []any:
		for _, item := range s {
			if str, ok := item.(string); ok {
				return str, true
			}
		}
	case []string:
		if len(s) > 0 {
			return s[0], true
		}
	}
	return "", false
}

func (w *Widget) hasOption(value string) bool {
	return w.optionIndex(value) >= 0
}

func (w *Widget) optionIndex(value string) int {
	for i, o := range w.Options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

func buildSwitch(b *buildContext, c a2ui.Component) *Widget {
	p := c.Props.(a2ui.CheckBox)
	w := b.widget(c, KindSwitch)
	w.Label = b.text(p.Label)
	w.Binding = p.Value.Path

	on, _ := a2ui.AsBool(b.resolve(p.Value))
	b.r.values[c.ID] = on
	return w
}

func buildColor(b *buildContext, c a2ui.Component) *Widget {
	p := c.Props.(a2ui.ColorPicker)
	w := b.widget(c, KindColor)
	w.Label = b.text(p.Label)
	w.Binding = p.Value.Path

	value := DefaultColor
	if hex, ok := normalizeColor(b.text(p.Value)); ok {
		value = hex
	}
	b.r.values[c.ID] = value
	return w
}

func normalizeColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return "", false
	}
	return col.Hex(), true
}

func buildSketch(b *buildContext, c a2ui.Component) *Widget {
	p := c.Props.(a2ui.SketchCanvas)
	w := b.widget(c, KindSketch)
	w.Label = b.text(p.Label)
	w.Binding = p.Value.Path
	return w
}

func buildButton(b *buildContext, c a2ui.Component) *Widget {
	p := c.Props.(a2ui.Button)
	w := b.widget(c, KindButton)
	action := p.Action
	w.Action = &action
	w.Text = action.Name

	if child, ok := b.surface.Component(p.Child); ok {
		if t, ok := child.Props.(a2ui.Text); ok {
			if caption := b.text(t.Text); caption != "" {
				w.Text = caption
			}
		}
	}
	return w
}

func buildDivider(b *buildContext, c a2ui.Component) *Widget {
	return b.widget(c, KindDivider)
}

func buildGroup(layout string) builder {
	return func(b *buildContext, c a2ui.Component) *Widget {
		w := b.widget(c, KindGroup)
		w.Layout = layout
		return w
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
