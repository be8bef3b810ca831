package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/genui/a2ui"
)

func TestView(t *testing.T) {
	r := newTestRenderer()
	panels := r.Render([]a2ui.Surface{imageSurface()})
	require.NoError(t, r.Input("vivid", true))

	out := r.View(panels, ViewOptions{Focus: "size", ShowSurfaceIDs: true})
	for _, want := range []string{
		"main",
		"Your image",
		"[image image/jpeg, 3 B]",
		"Size: ",
		"1024",
		"< Realistic >",
		"[x]",
		"#ff0000",
		"[no sketch]",
		"Apply",
		"> ",
	} {
		assert.Contains(t, out, want)
	}
}

func TestView_Legacy(t *testing.T) {
	r := newTestRenderer()
	r.Render(nil)
	panel := r.FromLegacy([]a2ui.LegacyWidget{{ID: "color-tone-widget", Type: LegacyColorToneControl}})

	out := r.View([]Panel{panel}, ViewOptions{Width: 60})
	assert.Contains(t, out, "Color Tone Widget")
	assert.Contains(t, out, "Hue: ")
	assert.Contains(t, out, "< Neutral >")
}

func TestSliderBar(t *testing.T) {
	assert.Equal(t, "[--------------------]", sliderBar(0, 0, 100))
	assert.Equal(t, "[==========----------]", sliderBar(50, 0, 100))
	assert.Equal(t, "[====================]", sliderBar(100, 0, 100))
	assert.Equal(t, "[--------------------]", sliderBar(5, 5, 5))
}
