package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2ui"
)

func TestFromLegacy(t *testing.T) {
	r := newTestRenderer()
	r.Render(nil)
	panel := r.FromLegacy([]a2ui.LegacyWidget{
		{ID: "brightness-slider", Type: LegacySlider, Properties: map[string]any{"min": 0.0, "max": 100.0, "default": 50.0}},
		{ID: "style-dropdown", Type: LegacyDropdown, Label: "Art Style", Properties: map[string]any{"options": []any{"Realistic", "Anime"}, "default": "Anime"}},
		{ID: "caption", Type: LegacyTextInput, Properties: map[string]any{"default": "hello"}},
		{ID: "hdr", Type: LegacyToggle, Properties: map[string]any{"default": true}},
		{ID: "accent", Type: LegacyColorPicker, Properties: map[string]any{"default": "#00ff00"}},
		{ID: "color-tone-widget", Type: LegacyColorToneControl},
		{ID: "sketch-board-widget", Type: LegacySketchBoard},
		{ID: "range", Type: LegacyRangeDual, Properties: map[string]any{"min": 1.0, "max": 9.0}},
		{ID: "hologram", Type: "hologram"},
	})

	assert.Equal(t, LegacySurfaceID, panel.SurfaceID)
	require.Len(t, panel.Widgets, 9)
	assert.Equal(t, "Brightness Slider", panel.Widgets[0].Label)
	assert.Equal(t, "Art Style", panel.Widgets[1].Label)
	assert.Equal(t, KindUnsupported, panel.Widgets[8].Kind)
	assert.Equal(t, "unsupported widget: hologram", panel.Widgets[8].Text)

	tone := panel.Widgets[5]
	assert.Equal(t, KindGroup, tone.Kind)
	assert.Equal(t, LegacyColorToneControl, tone.Legacy)
	require.Len(t, tone.Children, 4)

	assert.Equal(t, map[string]any{
		"brightness-slider":             50.0,
		"style-dropdown":                "Anime",
		"caption":                       "hello",
		"hdr":                           true,
		"accent":                        "#00ff00",
		"color-tone-widget.hue":         180.0,
		"color-tone-widget.saturation":  50.0,
		"color-tone-widget.lightness":   50.0,
		"color-tone-widget.temperature": "neutral",
		"range.min":                     1.0,
		"range.max":                     9.0,
	}, r.WidgetValues())

	assert.Contains(t, r.Interactive(), "color-tone-widget.hue")
	assert.NotContains(t, r.Interactive(), "color-tone-widget")
}

func TestLegacyParts(t *testing.T) {
	r := newTestRenderer()
	r.Render(nil)
	r.FromLegacy([]a2ui.LegacyWidget{
		{ID: "color-tone-widget", Type: LegacyColorToneControl},
		{ID: "sketch-board-widget", Type: LegacySketchBoard},
		{ID: "brightness", Type: LegacySlider},
	})
	require.NoError(t, r.Input("color-tone-widget.hue", 200))
	require.NoError(t, r.Input("brightness", 70))

	parts := r.LegacyParts()
	require.Len(t, parts, 2)
	assert.Equal(t, a2ui.LegacyWidget{
		ID:   "color-tone-widget",
		Type: LegacyColorToneControl,
		Properties: map[string]any{
			"hue":         200.0,
			"saturation":  50.0,
			"lightness":   50.0,
			"temperature": "neutral",
		},
	}, parts[0])
	assert.Equal(t, map[string]any{"value": 70.0}, parts[1].Properties)

	sketch := genui.Image{MIMEType: "image/png", Data: []byte{1, 2}}
	require.NoError(t, r.Input("sketch-board-widget", sketch))
	parts = r.LegacyParts()
	require.Len(t, parts, 3)
	assert.Equal(t, LegacySketchBoard, parts[1].Type)
	assert.Equal(t, map[string]any{"sketch": "AQI="}, parts[1].Properties)
}
