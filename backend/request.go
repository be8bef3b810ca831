package backend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2a"
	"github.com/spetersoncode/genui/a2ui"
	"github.com/spetersoncode/genui/render"
)

// DefaultRegeneratePrompt is the prompt used when a widget update carries none.
const DefaultRegeneratePrompt = "Regenerate image with updated parameters"

// hintMarker starts the natural-language widget hint clients append to
// prompts. The agent rebuilds the hint itself from the structured values.
const hintMarker = "\n\nAdjustments: "

// WidgetInput is the value of one widget as sent by the client.
type WidgetInput struct {
	ID     string
	Type   string
	Fields map[string]any
	// Sketch holds the decoded drawing of sketch widgets.
	Sketch *genui.Image
}

func (w WidgetInput) isTone() bool {
	if w.Type == render.LegacyColorToneControl {
		return true
	}
	_, ok := w.Fields["hue"]
	return ok
}

// Request is an inbound message reduced to what the agent acts on.
type Request struct {
	Query   string
	Action  string
	Widgets []WidgetInput
	// Legacy is set when widget values arrived as legacy a2ui parts.
	Legacy bool
}

// HasInput reports whether the request carries widget values.
func (r Request) HasInput() bool {
	return len(r.Widgets) > 0
}

// ParseRequest extracts the prompt and widget values from a message. A
// userAction part takes precedence over the text parts.
func ParseRequest(msg a2a.Message, logger *slog.Logger) Request {
	if logger == nil {
		logger = slog.Default()
	}

	var req Request
	var action *a2ui.UserAction
	for i, part := range msg.Parts {
		dp, ok := part.(a2a.DataPart)
		if !ok {
			continue
		}
		if ua, ok := a2ui.ParseUserAction(dp); ok {
			action = &ua
			continue
		}
		raw, ok := dp.Field("a2ui")
		if !ok {
			logger.Debug("ignoring data part", "index", i, "keys", dp.Keys())
			continue
		}
		var lw a2ui.LegacyWidget
		if err := json.Unmarshal(raw, &lw); err != nil || lw.ID == "" {
			logger.Warn("skipping malformed legacy widget part", "index", i, "error", err)
			continue
		}
		req.Widgets = append(req.Widgets, legacyInput(lw, logger))
		req.Legacy = true
	}

	if action != nil {
		req.Action = action.Name
		if action.Name == a2ui.ActionUpdateWidgets {
			req.Query = DefaultRegeneratePrompt
			if p, ok := a2ui.AsString(action.Context["prompt"]); ok && strings.TrimSpace(p) != "" {
				req.Query = p
			}
			req.Widgets = append(req.Widgets, actionInputs(action.Context, logger)...)
		} else {
			req.Query = fmt.Sprintf("User submitted an event: %s with data: %v", action.Name, action.Context)
		}
		return req
	}

	req.Query = StripHint(msg.TextContent())
	return req
}

// StripHint removes a trailing Adjustments hint from a prompt.
func StripHint(prompt string) string {
	base, _, _ := strings.Cut(prompt, hintMarker)
	return strings.TrimSpace(base)
}

func legacyInput(lw a2ui.LegacyWidget, logger *slog.Logger) WidgetInput {
	in := WidgetInput{ID: lw.ID, Type: lw.Type, Fields: make(map[string]any, len(lw.Properties))}
	maps.Copy(in.Fields, lw.Properties)
	if s, ok := in.Fields["sketch"].(string); ok && s != "" {
		img, err := genui.DecodeImage("", s)
		if err != nil {
			logger.Warn("dropping undecodable sketch", "widget", lw.ID, "error", err)
			delete(in.Fields, "sketch")
		} else {
			in.Sketch = &img
		}
	}
	return in
}

// actionInputs groups the flat widget map of an update_widgets action by
// widget: "tone.hue" becomes field "hue" of widget "tone", a plain id
// becomes field "value". Sketches arrive as data URLs under "sketches".
func actionInputs(ctx map[string]any, logger *slog.Logger) []WidgetInput {
	byID := make(map[string]*WidgetInput)
	var order []string
	get := func(id string) *WidgetInput {
		if in, ok := byID[id]; ok {
			return in
		}
		in := &WidgetInput{ID: id, Fields: make(map[string]any)}
		byID[id] = in
		order = append(order, id)
		return in
	}

	if widgets, ok := ctx["widgets"].(map[string]any); ok {
		for _, key := range sortedKeys(widgets) {
			v := widgets[key]
			id, field, nested := strings.Cut(key, ".")
			in := get(id)
			switch {
			case nested:
				in.Fields[field] = v
			default:
				if m, ok := v.(map[string]any); ok {
					maps.Copy(in.Fields, m)
				} else {
					in.Fields["value"] = v
				}
			}
		}
	}

	if sketches, ok := ctx["sketches"].(map[string]any); ok {
		for _, id := range sortedKeys(sketches) {
			s, ok := sketches[id].(string)
			if !ok || s == "" {
				continue
			}
			img, err := genui.DecodeImage("", s)
			if err != nil {
				logger.Warn("dropping undecodable sketch", "widget", id, "error", err)
				continue
			}
			in := get(id)
			in.Type = render.LegacySketchCanvas
			in.Fields["sketch"] = img.Base64()
			in.Sketch = &img
		}
	}

	out := make([]WidgetInput, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}
