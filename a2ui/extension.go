package a2ui

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2a"
)

// ExtensionURI identifies the A2UI v0.8 extension of A2A.
const ExtensionURI = "https://a2ui.org/a2a-extension/a2ui/v0.8"

// MIMEType marks data parts that carry A2UI messages.
const MIMEType = "application/json+a2ui"

// ActionUpdateWidgets is the user action sent when widget values change.
const ActionUpdateWidgets = "update_widgets"

// NewPart wraps a protocol message in an A2A data part.
func NewPart(m Message) (a2a.DataPart, error) {
	raw, err := Encode(m)
	if err != nil {
		return a2a.DataPart{}, fmt.Errorf("failed to encode %s: %w", m.Key(), err)
	}
	return a2a.DataPart{
		Kind:     "data",
		Data:     raw,
		Metadata: map[string]any{"mimeType": MIMEType},
	}, nil
}

// InlineData is the payload of an inline binary part.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// NewImagePart wraps an image in an {"inlineData": {...}} data part.
func NewImagePart(img genui.Image) (a2a.DataPart, error) {
	return a2a.NewDataPart(map[string]InlineData{
		"inlineData": {MimeType: img.MIMEType, Data: img.Base64()},
	})
}

// DataURL returns the image as a data URL, the form image bindings resolve to.
func DataURL(img genui.Image) string {
	return "data:" + img.MIMEType + ";base64," + img.Base64()
}

// UserAction is a client-to-server event raised by the UI.
type UserAction struct {
	Name              string         `json:"actionName"`
	SurfaceID         string         `json:"surfaceId,omitempty"`
	SourceComponentID string         `json:"sourceComponentId,omitempty"`
	Timestamp         string         `json:"timestamp,omitempty"`
	Context           map[string]any `json:"context,omitempty"`
}

// NewUserActionPart wraps an action in a {"userAction": {...}} data part.
func NewUserActionPart(action UserAction) (a2a.DataPart, error) {
	if action.Timestamp == "" {
		action.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return a2a.NewDataPart(map[string]UserAction{"userAction": action})
}

// ParseUserAction extracts a user action from a data part.
func ParseUserAction(p a2a.DataPart) (UserAction, bool) {
	raw, ok := p.Field("userAction")
	if !ok {
		return UserAction{}, false
	}
	var action UserAction
	if err := json.Unmarshal(raw, &action); err != nil || action.Name == "" {
		return UserAction{}, false
	}
	return action, true
}
