package a2ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2a"
)

func TestNewPart(t *testing.T) {
	p, err := NewPart(SurfaceUpdate{SurfaceID: "s", Components: []Component{textComponent("t", "hi")}})
	require.NoError(t, err)
	assert.Equal(t, "data", p.Kind)
	assert.Equal(t, MIMEType, p.Metadata["mimeType"])
	assert.JSONEq(t, `{"surfaceUpdate":{"surfaceId":"s","components":[{"id":"t","component":{"Text":{"text":{"literalString":"hi"}}}}]}}`, string(p.Data))
}

func TestImageParts(t *testing.T) {
	img := genui.Image{MIMEType: "image/jpeg", Data: []byte{1, 2, 3}}

	p, err := NewImagePart(img)
	require.NoError(t, err)
	assert.JSONEq(t, `{"inlineData":{"mimeType":"image/jpeg","data":"AQID"}}`, string(p.Data))

	assert.Equal(t, "data:image/jpeg;base64,AQID", DataURL(img))

	decoded, err := genui.DecodeImage("", DataURL(img))
	require.NoError(t, err)
	assert.Equal(t, img, decoded)
}

func TestUserAction(t *testing.T) {
	action := UserAction{
		Name:              ActionUpdateWidgets,
		SurfaceID:         "main",
		SourceComponentID: "apply",
		Context:           map[string]any{"prompt": "a cat"},
	}
	p, err := NewUserActionPart(action)
	require.NoError(t, err)

	got, ok := ParseUserAction(p)
	require.True(t, ok)
	assert.Equal(t, ActionUpdateWidgets, got.Name)
	assert.Equal(t, "main", got.SurfaceID)
	assert.NotEmpty(t, got.Timestamp)
	assert.Equal(t, "a cat", got.Context["prompt"])

	_, ok = ParseUserAction(a2a.DataPart{Kind: "data", Data: []byte(`{"userAction":{}}`)})
	assert.False(t, ok)
	_, ok = ParseUserAction(a2a.DataPart{Kind: "data", Data: []byte(`{"other":1}`)})
	assert.False(t, ok)
}
