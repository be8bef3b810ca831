package a2ui

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2a"
)

func rawPart(t *testing.T, data string) a2a.DataPart {
	t.Helper()
	require.True(t, json.Valid([]byte(data)), data)
	return a2a.DataPart{Kind: "data", Data: json.RawMessage(data)}
}

func TestDecodeEnvelope(t *testing.T) {
	img := genui.Image{MIMEType: "image/png", Data: []byte("png-bytes")}
	imagePart, err := NewImagePart(img)
	require.NoError(t, err)
	uiPart, err := NewPart(BeginRendering{SurfaceID: "s", Root: "root"})
	require.NoError(t, err)
	legacyPart, err := NewLegacyPart(LegacyWidget{ID: "color-tone-widget", Type: "color-tone-control"})
	require.NoError(t, err)

	msg := a2a.NewMessage(a2a.MessageRoleAgent,
		a2a.NewTextPart("Here is your image."),
		imagePart,
		uiPart,
		rawPart(t, `[{"dataModelUpdate":{"surfaceId":"s","contents":[{"key":"size","valueInt":512}]}}]`),
		legacyPart,
		a2a.NewTextPart("   "),
		rawPart(t, `{"unrelated":true}`),
		a2a.NewFilePartWithBytes("doc.txt", "text/plain", "aGk="),
	)

	env := DecodeEnvelope(msg, quietLogger())

	require.Len(t, env.Parts, 2)
	assert.Equal(t, "Here is your image.", env.Parts[0].Text)
	require.True(t, env.Parts[1].IsImage())
	assert.Equal(t, img, *env.Parts[1].Image)

	require.Len(t, env.Messages, 2)
	assert.Equal(t, KeyBeginRendering, env.Messages[0].Key())
	assert.Equal(t, KeyDataModelUpdate, env.Messages[1].Key())

	require.Len(t, env.Legacy, 1)
	assert.Equal(t, "color-tone-control", env.Legacy[0].Type)

	assert.Equal(t, 2, env.Ignored)
	assert.True(t, env.HasWidgets())
	assert.Equal(t, "Here is your image.", env.Text())
	assert.Equal(t, []genui.Image{img}, env.Images())
}

func TestDecodeEnvelope_FileImage(t *testing.T) {
	data := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	msg := a2a.NewMessage(a2a.MessageRoleAgent,
		a2a.NewFilePartWithBytes("out.jpg", "image/jpeg", data),
		a2a.NewTextPart("caption"),
	)

	env := DecodeEnvelope(msg, quietLogger())
	require.Len(t, env.Parts, 2)
	assert.True(t, env.Parts[0].IsImage())
	assert.Equal(t, "image/jpeg", env.Parts[0].Image.MIMEType)
	assert.False(t, env.HasWidgets())
}

func TestDecodeEnvelope_Malformed(t *testing.T) {
	msg := a2a.NewMessage(a2a.MessageRoleAgent,
		rawPart(t, `{"inlineData":{"mimeType":"image/png","data":"!!!"}}`),
		rawPart(t, `{"a2ui":{"id":"w"}}`),
		rawPart(t, `[{"surfaceUpdate":"bad"}]`),
		rawPart(t, `{"surfaceUpdate":{"components":7}}`),
		rawPart(t, `"just a string"`),
	)

	env := DecodeEnvelope(msg, nil)
	assert.Empty(t, env.Parts)
	assert.Empty(t, env.Messages)
	assert.Empty(t, env.Legacy)
	assert.Equal(t, 5, env.Ignored)
}

func TestEnvelopeText_JoinsParts(t *testing.T) {
	env := Envelope{Parts: []ContentPart{{Text: "one"}, {Image: &genui.Image{}}, {Text: "two"}}}
	assert.Equal(t, "one\n\ntwo", env.Text())
}
