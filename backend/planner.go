package backend

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/spetersoncode/genui/a2ui"
	"github.com/spetersoncode/genui/render"
)

// Size bounds of generated images.
const (
	MinSize     = 128
	MaxSize     = 2048
	DefaultSize = 512
)

// Plan is the widget set proposed for a request.
type Plan struct {
	Widgets []a2ui.LegacyWidget
	// Values are parameters detected in the prompt, keyed by widget id.
	Values    map[string]any
	Reasoning string
}

// Planner decides which tuning widgets a request deserves.
type Planner interface {
	Plan(ctx context.Context, prompt string) (Plan, error)
}

// PlannerFunc adapts a function to the Planner interface.
type PlannerFunc func(ctx context.Context, prompt string) (Plan, error)

// Plan calls f.
func (f PlannerFunc) Plan(ctx context.Context, prompt string) (Plan, error) {
	return f(ctx, prompt)
}

// KeywordPlanner extracts color, size and style from the prompt with fixed
// keyword rules and offers a widget per detected parameter. It never fails.
type KeywordPlanner struct{}

var (
	sizePattern = regexp.MustCompile(`\bsize\s*(?:is|=|:)?\s*(\d{2,4})\b`)

	keywordColors = []string{"red", "blue", "green", "yellow", "orange", "purple", "pink", "black", "white"}
	keywordStyles = []string{"cartoon", "realistic", "abstract"}
)

// DetectParameters returns the color, size and style mentioned in a prompt.
// Size is always present: an explicit "size N" clamped to the size bounds,
// 1024 for "large", 256 for "small", else the default.
func DetectParameters(prompt string) map[string]any {
	values := make(map[string]any)

	for _, c := range keywordColors {
		if containsAny(prompt, c) {
			values["color"] = c
			break
		}
	}

	switch m := sizePattern.FindStringSubmatch(strings.ToLower(prompt)); {
	case m != nil:
		n, _ := strconv.Atoi(m[1])
		values["size"] = max(MinSize, min(MaxSize, n))
	case containsAny(prompt, "large"):
		values["size"] = 1024
	case containsAny(prompt, "small"):
		values["size"] = 256
	default:
		values["size"] = DefaultSize
	}

	switch {
	case containsAny(prompt, "cartoon", "animated"):
		values["style"] = "cartoon"
	case containsAny(prompt, "realistic", "photo"):
		values["style"] = "realistic"
	case containsAny(prompt, "abstract"):
		values["style"] = "abstract"
	}

	return values
}

// Plan implements Planner.
func (KeywordPlanner) Plan(_ context.Context, prompt string) (Plan, error) {
	values := DetectParameters(prompt)
	plan := Plan{Values: values, Reasoning: "keyword match"}

	plan.Widgets = append(plan.Widgets, a2ui.LegacyWidget{
		ID:    "size",
		Type:  render.LegacySlider,
		Label: "Size",
		Properties: map[string]any{
			"min": MinSize, "max": MaxSize, "step": 64, "default": values["size"],
		},
	})
	if c, ok := values["color"]; ok {
		plan.Widgets = append(plan.Widgets, a2ui.LegacyWidget{
			ID:         "color",
			Type:       render.LegacyTextInput,
			Label:      "Color",
			Properties: map[string]any{"default": c},
		})
	}
	if s, ok := values["style"]; ok {
		options := make([]any, len(keywordStyles))
		for i, st := range keywordStyles {
			options[i] = st
		}
		plan.Widgets = append(plan.Widgets, a2ui.LegacyWidget{
			ID:         "style",
			Type:       render.LegacyDropdown,
			Label:      "Style",
			Properties: map[string]any{"options": options, "default": s},
		})
	}
	if containsAny(prompt, "color tone", "palette", "mood") {
		plan.Widgets = append(plan.Widgets, a2ui.LegacyWidget{
			ID:    "color-tone",
			Type:  render.LegacyColorToneControl,
			Label: "Color Tone",
			Properties: map[string]any{
				"hue": DefaultHue, "saturation": DefaultSaturation,
				"lightness": DefaultLightness, "temperature": DefaultTemperature,
			},
		})
	}
	if containsAny(prompt, "sketch", "layout", "composition") {
		plan.Widgets = append(plan.Widgets, a2ui.LegacyWidget{
			ID:    "layout-sketch",
			Type:  render.LegacySketchBoard,
			Label: "Layout Sketch",
		})
	}
	return plan, nil
}

var _ Planner = KeywordPlanner{}
