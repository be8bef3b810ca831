package a2ui

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2a"
)

// ContentPart is one presentable piece of an agent reply: text or an image.
type ContentPart struct {
	Text  string
	Image *genui.Image
}

// IsImage reports whether the part is an image.
func (c ContentPart) IsImage() bool {
	return c.Image != nil
}

// LegacyWidget is the flat widget descriptor older agents send in an
// {"a2ui": {...}} part instead of surface messages.
type LegacyWidget struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Label      string         `json:"label,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewLegacyPart wraps a legacy widget in an {"a2ui": {...}} data part.
func NewLegacyPart(w LegacyWidget) (a2a.DataPart, error) {
	return a2a.NewDataPart(map[string]LegacyWidget{"a2ui": w})
}

// Envelope is an agent reply split by role.
type Envelope struct {
	// Parts holds text and images in presentation order.
	Parts []ContentPart
	// Messages holds protocol messages in arrival order, to be applied as
	// one batch.
	Messages []Message
	// Legacy holds legacy widget descriptors in arrival order.
	Legacy []LegacyWidget
	// Ignored counts parts that matched no known shape.
	Ignored int
}

// Text joins the text parts with blank lines.
func (e Envelope) Text() string {
	var texts []string
	for _, p := range e.Parts {
		if !p.IsImage() && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n\n")
}

// Images returns the image parts in order.
func (e Envelope) Images() []genui.Image {
	var imgs []genui.Image
	for _, p := range e.Parts {
		if p.IsImage() {
			imgs = append(imgs, *p.Image)
		}
	}
	return imgs
}

// HasWidgets reports whether the reply carries any UI beyond text and images.
func (e Envelope) HasWidgets() bool {
	return len(e.Messages) > 0 || len(e.Legacy) > 0
}

// DecodeEnvelope classifies the parts of an agent message. Parts that fail
// to decode are logged and counted in Ignored; decoding never fails as a
// whole.
func DecodeEnvelope(msg a2a.Message, logger *slog.Logger) Envelope {
	if logger == nil {
		logger = slog.Default()
	}

	var env Envelope
	for i, part := range msg.Parts {
		switch p := part.(type) {
		case a2a.TextPart:
			if strings.TrimSpace(p.Text) != "" {
				env.Parts = append(env.Parts, ContentPart{Text: p.Text})
			}
		case a2a.FilePart:
			if p.File.Bytes == "" || !strings.HasPrefix(p.File.MimeType, "image/") {
				env.Ignored++
				continue
			}
			img, err := genui.DecodeImage(p.File.MimeType, p.File.Bytes)
			if err != nil {
				logger.Warn("skipping undecodable file part", "index", i, "error", err)
				env.Ignored++
				continue
			}
			env.Parts = append(env.Parts, ContentPart{Image: &img})
		case a2a.DataPart:
			if !env.addData(p.Data, logger) {
				logger.Debug("ignoring data part", "index", i, "keys", p.Keys())
				env.Ignored++
			}
		default:
			env.Ignored++
		}
	}
	return env
}

func (e *Envelope) addData(raw json.RawMessage, logger *slog.Logger) bool {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		msgs, err := ParseMessages(raw)
		if err != nil {
			logger.Warn("skipping undecodable A2UI message list", "error", err)
			return false
		}
		e.Messages = append(e.Messages, msgs...)
		return len(msgs) > 0
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}

	if inline, ok := obj["inlineData"]; ok {
		var data InlineData
		if err := json.Unmarshal(inline, &data); err != nil {
			logger.Warn("skipping malformed inline data", "error", err)
			return false
		}
		img, err := genui.DecodeImage(data.MimeType, data.Data)
		if err != nil {
			logger.Warn("skipping undecodable inline image", "mime_type", data.MimeType, "error", err)
			return false
		}
		e.Parts = append(e.Parts, ContentPart{Image: &img})
		return true
	}

	if legacy, ok := obj["a2ui"]; ok {
		var w LegacyWidget
		if err := json.Unmarshal(legacy, &w); err != nil || w.Type == "" {
			logger.Warn("skipping malformed legacy widget", "error", err)
			return false
		}
		e.Legacy = append(e.Legacy, w)
		return true
	}

	if IsMessage(raw) {
		m, err := ParseMessage(raw)
		if err != nil {
			logger.Warn("skipping undecodable A2UI message", "error", err)
			return false
		}
		e.Messages = append(e.Messages, m)
		return true
	}
	return false
}
