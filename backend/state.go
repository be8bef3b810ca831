package backend

import (
	"maps"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2ui"
)

// Default color tone applied to missing fields.
const (
	DefaultHue         = 180
	DefaultSaturation  = 50
	DefaultLightness   = 50
	DefaultTemperature = "neutral"
)

// ColorTone is the palette a color tone widget asks for.
type ColorTone struct {
	Hue         float64 `json:"hue"`
	Saturation  float64 `json:"saturation"`
	Lightness   float64 `json:"lightness"`
	Temperature string  `json:"temperature"`
}

// toneFrom reads a color tone from widget fields, filling defaults.
func toneFrom(fields map[string]any) ColorTone {
	tone := ColorTone{
		Hue:         DefaultHue,
		Saturation:  DefaultSaturation,
		Lightness:   DefaultLightness,
		Temperature: DefaultTemperature,
	}
	if n, ok := a2ui.AsNumber(fields["hue"]); ok {
		tone.Hue = n
	}
	if n, ok := a2ui.AsNumber(fields["saturation"]); ok {
		tone.Saturation = n
	}
	if n, ok := a2ui.AsNumber(fields["lightness"]); ok {
		tone.Lightness = n
	}
	if s, ok := a2ui.AsString(fields["temperature"]); ok && s != "" {
		tone.Temperature = s
	}
	return tone
}

// ContextState is what the agent remembers about one conversation.
type ContextState struct {
	Prompt string `json:"prompt,omitempty"`
	// Widgets maps widget ids to their fields. Scalar widgets carry a single
	// "value" field.
	Widgets map[string]map[string]any `json:"widgets,omitempty"`
	// Plan is the widget set shown for this conversation.
	Plan      []a2ui.LegacyWidget `json:"plan,omitempty"`
	Tone      *ColorTone          `json:"tone,omitempty"`
	Sketch    *genui.Image        `json:"sketch,omitempty"`
	LastImage *genui.Image        `json:"lastImage,omitempty"`
	Turns     int                 `json:"turns"`
}

// reset drops everything a fresh request must not inherit.
func (s *ContextState) reset() {
	s.Widgets = nil
	s.Tone = nil
	s.Sketch = nil
	s.LastImage = nil
}

// apply merges widget input into the state. Each widget's fields replace
// the previous ones.
func (s *ContextState) apply(input []WidgetInput) {
	if len(input) == 0 {
		return
	}
	if s.Widgets == nil {
		s.Widgets = make(map[string]map[string]any)
	}
	for _, in := range input {
		s.Widgets[in.ID] = maps.Clone(in.Fields)
		switch {
		case in.isTone():
			tone := toneFrom(in.Fields)
			s.Tone = &tone
		case in.Sketch != nil:
			img := *in.Sketch
			s.Sketch = &img
		}
	}
}

// values flattens widget fields into "<id>" and "<id>.<field>" keys, the
// form surface data models use.
func (s *ContextState) values() map[string]any {
	out := make(map[string]any)
	for id, fields := range s.Widgets {
		for field, v := range fields {
			switch field {
			case "value":
				out[id] = v
			case "sketch":
			default:
				out[id+"."+field] = v
			}
		}
	}
	return out
}

// hintValues returns the widgets described in the Adjustments hint. Color
// tone and sketch widgets are described separately.
func (s *ContextState) hintValues() map[string]any {
	out := make(map[string]any)
	for id, fields := range s.Widgets {
		if _, ok := fields["hue"]; ok {
			continue
		}
		if _, ok := fields["sketch"]; ok {
			continue
		}
		out[id] = fields
	}
	return out
}
