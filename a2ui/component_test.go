package a2ui

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		check    func(t *testing.T, c Component)
	}{
		{
			name:     "text",
			input:    `{"id":"title","component":{"Text":{"text":{"literalString":"Hello"},"usageHint":"h1"}}}`,
			wantKind: KindText,
			check: func(t *testing.T, c Component) {
				p := c.Props.(Text)
				assert.Equal(t, "Hello", p.Text.Text(nil))
				assert.Equal(t, "h1", p.UsageHint)
			},
		},
		{
			name:     "heading alias",
			input:    `{"id":"h","component":{"Heading":{"text":{"literalString":"Title"}}}}`,
			wantKind: KindText,
		},
		{
			name:     "slider",
			input:    `{"id":"size","weight":2,"component":{"Slider":{"value":{"path":"/size"},"minValue":{"literalNumber":128},"maxValue":{"literalNumber":2048}}}}`,
			wantKind: KindSlider,
			check: func(t *testing.T, c Component) {
				assert.Equal(t, 2.0, c.Weight)
				p := c.Props.(Slider)
				assert.Equal(t, "/size", p.Value.Path)
				assert.Equal(t, 128.0, p.MinValue.Literal())
				assert.Equal(t, 2048.0, p.MaxValue.Literal())
			},
		},
		{
			name:     "image sources",
			input:    `{"id":"img","component":{"Image":{"sources":[{"uri":{"path":"/generated_image"},"mimeType":"image/jpeg"}]}}}`,
			wantKind: KindImage,
			check: func(t *testing.T, c Component) {
				src, mime := c.Props.(Image).Source()
				assert.Equal(t, "/generated_image", src.Path)
				assert.Equal(t, "image/jpeg", mime)
			},
		},
		{
			name:     "select alias",
			input:    `{"id":"style","component":{"Select":{"options":[{"label":{"literalString":"Cartoon"},"value":"cartoon"}]}}}`,
			wantKind: KindMultipleChoice,
			check: func(t *testing.T, c Component) {
				p := c.Props.(MultipleChoice)
				require.Len(t, p.Options, 1)
				assert.Equal(t, "cartoon", p.Options[0].Value)
			},
		},
		{
			name:     "column children",
			input:    `{"id":"root","component":{"Column":{"children":{"explicitList":["a","b"]}}}}`,
			wantKind: KindColumn,
			check: func(t *testing.T, c Component) {
				assert.Equal(t, []string{"a", "b"}, c.ChildIDs())
			},
		},
		{
			name:     "list template",
			input:    `{"id":"list","component":{"List":{"children":{"template":{"componentId":"item","dataBinding":"/items"}}}}}`,
			wantKind: KindList,
			check: func(t *testing.T, c Component) {
				assert.Equal(t, []string{"item"}, c.ChildIDs())
			},
		},
		{
			name:     "button",
			input:    `{"id":"go","component":{"Button":{"child":"go-label","action":{"name":"update_widgets"}}}}`,
			wantKind: KindButton,
			check: func(t *testing.T, c Component) {
				assert.Equal(t, []string{"go-label"}, c.ChildIDs())
				assert.Equal(t, ActionUpdateWidgets, c.Props.(Button).Action.Name)
			},
		},
		{
			name:     "unknown kind",
			input:    `{"id":"x","component":{"Video":{"url":"v.mp4"}}}`,
			wantKind: "Video",
			check: func(t *testing.T, c Component) {
				u := c.Props.(Unknown)
				assert.NoError(t, u.Err)
				assert.JSONEq(t, `{"url":"v.mp4"}`, string(u.Raw))
			},
		},
		{
			name:     "malformed known kind",
			input:    `{"id":"s","component":{"Slider":{"value":"oops"}}}`,
			wantKind: KindSlider,
			check: func(t *testing.T, c Component) {
				u, ok := c.Props.(Unknown)
				require.True(t, ok)
				assert.Error(t, u.Err)
			},
		},
		{
			name:     "empty component",
			input:    `{"id":"e","component":{}}`,
			wantKind: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Component
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			assert.Equal(t, tt.wantKind, c.Kind())
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

func TestComponentUnmarshal_RequiresID(t *testing.T) {
	var c Component
	assert.Error(t, json.Unmarshal([]byte(`{"component":{"Text":{}}}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`[]`), &c))
}

func TestComponentMarshal(t *testing.T) {
	c := Component{ID: "size", Props: Slider{Value: Path("/size"), MinValue: Number(128)}}
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"size","component":{"Slider":{"value":{"path":"/size"},"minValue":{"literalNumber":128}}}}`, string(data))

	var back Component
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)

	unknown := Component{ID: "v", Props: Unknown{Name: "Video", Raw: json.RawMessage(`{"a":1}`)}}
	data, err = json.Marshal(unknown)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"v","component":{"Video":{"a":1}}}`, string(data))
}
