package backend

import (
	"fmt"
	"strings"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2ui"
)

const modifyWithSketch = `TASK: Modify the provided image using the sketch as a LAYOUT GUIDE.

The first image is the ORIGINAL image to modify.
The second image (sketch) shows the DESIRED LAYOUT. Use it only as a guide for positioning and composition.

DO NOT:
- Include sketch lines in the final image
- Overlay or trace the sketch
- Treat the sketch as content

DO:
- Keep the style and content from the original image
- Rearrange elements to match the sketch's spatial layout
- Use the sketch as a blueprint for WHERE things should be positioned

Original request: %s

Apply the color adjustments if specified, and use the sketch to guide the spatial arrangement.`

const generateWithSketch = `TASK: Generate an image using the provided sketch as a LAYOUT GUIDE ONLY.

The sketch shows WHERE objects should be positioned. It is NOT content to include in the final image.

DO NOT:
- Include sketch lines or drawing in the final image
- Overlay or trace the sketch
- Make the image look like a drawing

DO:
- Create a realistic/photographic image
- Position elements according to the sketch's spatial layout
- Use the sketch as a blueprint for composition

Request: %s

The sketch defines the spatial arrangement. Generate content that follows this layout.`

var modificationWords = []string{"change", "modify", "update", "adjust", "make it", "add", "remove"}

// IsModification reports whether a generation should edit the previous image
// rather than start over.
func IsModification(prompt string, st ContextState) bool {
	if st.LastImage == nil {
		return false
	}
	return st.Tone != nil || st.Sketch != nil || containsAny(prompt, modificationWords...)
}

// EnhancePrompt builds the generation prompt from the user's request and the
// conversation state, and returns the reference images to send with it: the
// previous image when modifying, then the sketch.
func EnhancePrompt(query string, st ContextState) (string, []genui.Image) {
	base := query + a2ui.Adjustments(st.hintValues())
	modifying := IsModification(base, st)

	prompt := base
	if st.Tone != nil {
		prompt += fmt.Sprintf("\n\nColor palette: %s tones with hue around %s°, %s%% saturation, %s%% lightness",
			st.Tone.Temperature,
			a2ui.FormatValue(st.Tone.Hue),
			a2ui.FormatValue(st.Tone.Saturation),
			a2ui.FormatValue(st.Tone.Lightness),
		)
	}

	var refs []genui.Image
	if modifying {
		refs = append(refs, *st.LastImage)
	}
	if st.Sketch != nil {
		if modifying {
			prompt = fmt.Sprintf(modifyWithSketch, base)
		} else {
			prompt = fmt.Sprintf(generateWithSketch, prompt)
		}
		refs = append(refs, *st.Sketch)
	}
	return strings.TrimSpace(prompt), refs
}

// ResponseText is the reply shown with the image, listing newly offered
// controls.
func ResponseText(widgets []a2ui.LegacyWidget) string {
	text := "I've generated an image based on your request."
	if len(widgets) == 0 {
		return text
	}
	text += "\n\nI've added some controls below for you to fine-tune:"
	for _, w := range widgets {
		label := w.Label
		if label == "" {
			label = a2ui.Label(w.ID)
		}
		text += "\n  • " + label
	}
	return text
}
