package a2ui

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"begin rendering", `{"beginRendering":{"surfaceId":"s","root":"root"}}`, false},
		{"surface update", `{"surfaceUpdate":{"surfaceId":"s","components":[{"id":"root","component":{"Column":{"children":{"explicitList":["img"]}}}},{"id":"img","component":{"Image":{"url":{"path":"/generated_image"}}}}]}}`, false},
		{"slider", `{"surfaceUpdate":{"surfaceId":"s","components":[{"id":"size","component":{"Slider":{"value":{"path":"/size"},"minValue":{"literalNumber":128}}}}]}}`, false},
		{"data model update", `{"dataModelUpdate":{"surfaceId":"s","contents":[{"key":"size","valueInt":512},{"key":"opts","valueMap":[{"key":"a","valueString":"b"}]}]}}`, false},
		{"delete surface", `{"deleteSurface":{"surfaceId":"s"}}`, false},
		{"unknown component kind passes", `{"surfaceUpdate":{"surfaceId":"s","components":[{"id":"v","component":{"Video":{}}}]}}`, false},
		{"missing root", `{"beginRendering":{"surfaceId":"s"}}`, true},
		{"two kinds", `{"beginRendering":{"surfaceId":"s","root":"r"},"deleteSurface":{"surfaceId":"s"}}`, true},
		{"unknown message", `{"openPanel":{}}`, true},
		{"component without id", `{"surfaceUpdate":{"surfaceId":"s","components":[{"component":{"Text":{"text":{"literalString":"x"}}}}]}}`, true},
		{"image without source", `{"surfaceUpdate":{"surfaceId":"s","components":[{"id":"i","component":{"Image":{}}}]}}`, true},
		{"slider without value", `{"surfaceUpdate":{"surfaceId":"s","components":[{"id":"s","component":{"Slider":{}}}]}}`, true},
		{"valueInt not integer", `{"dataModelUpdate":{"surfaceId":"s","contents":[{"key":"size","valueInt":1.5}]}}`, true},
		{"empty surface id", `{"beginRendering":{"surfaceId":"","root":"r"}}`, true},
		{"invalid json", `{`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(json.RawMessage(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ValidateMessages(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	good := []Message{
		BeginRendering{SurfaceID: "s", Root: "root"},
		SurfaceUpdate{SurfaceID: "s", Components: []Component{
			{ID: "root", Props: Image{Sources: []ImageSource{{URI: Path("/generated_image"), MimeType: "image/jpeg"}}}},
		}},
		DataModelUpdate{SurfaceID: "s", Contents: []DataEntry{Entry("generated_image", "data:image/jpeg;base64,AA==")}},
	}
	assert.NoError(t, v.ValidateMessages(good))

	bad := append(good, BeginRendering{SurfaceID: "s"})
	err = v.ValidateMessages(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message 3")
}
