// Package placeholder provides an offline [genui.ImageProvider] that renders
// a deterministic gradient PNG. The same prompt and options always produce the
// same bytes, which makes it suitable for demos without API keys and tests.
package placeholder

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spetersoncode/genui"
)

// DefaultEdge is the side length used when no size is requested.
const DefaultEdge = 64

// MaxEdge caps the generated side length.
const MaxEdge = 256

// Provider renders placeholder images locally.
type Provider struct {
	edge int
}

// Option configures a Provider.
type Option func(*Provider)

// WithEdge sets the default side length in pixels.
func WithEdge(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.edge = min(n, MaxEdge)
		}
	}
}

// New creates a placeholder provider.
func New(opts ...Option) *Provider {
	p := &Provider{edge: DefaultEdge}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GenerateImage renders one gradient per requested image. The hue comes from
// the hue option when set, otherwise from a hash of the prompt. Reference
// images are ignored.
func (p *Provider) GenerateImage(ctx context.Context, prompt string, opts ...genui.ImageOption) (*genui.ImageResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, genui.NewUserInputError("placeholder: empty prompt", 0, genui.ErrEmptyInput)
	}
	options := genui.ApplyImageOptions(opts...)

	hue := options.Hue
	if hue < 0 {
		hue = promptHue(prompt)
	}
	w, h := p.dimensions(options.Size)

	n := max(options.Count, 1)
	resp := &genui.ImageResponse{Text: fmt.Sprintf("Placeholder render (hue %.0f°).", math.Mod(hue, 360))}
	for i := range n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := render(w, h, math.Mod(hue+float64(i)*30, 360))
		if err != nil {
			return nil, genui.NewPermanentError("placeholder: encode failed", 0, err)
		}
		resp.Images = append(resp.Images, genui.GeneratedImage{
			Image:         genui.Image{MIMEType: "image/png", Data: data},
			RevisedPrompt: prompt,
		})
	}
	return resp, nil
}

// dimensions scales a "WxH" size down so the longer side fits the edge.
func (p *Provider) dimensions(size genui.ImageSize) (int, int) {
	sw, sh, ok := parseSize(size)
	if !ok {
		return p.edge, p.edge
	}
	if sw >= sh {
		return p.edge, max(1, p.edge*sh/sw)
	}
	return max(1, p.edge*sw/sh), p.edge
}

func parseSize(size genui.ImageSize) (int, int, bool) {
	ws, hs, found := strings.Cut(string(size), "x")
	if !found {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func promptHue(prompt string) float64 {
	f := fnv.New32a()
	_, _ = f.Write([]byte(strings.ToLower(strings.TrimSpace(prompt))))
	return float64(f.Sum32() % 360)
}

// render draws a vertical lightness gradient with a horizontal saturation
// sweep in the given hue.
func render(w, h int, hue float64) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		l := 0.25 + 0.5*float64(y)/float64(max(h-1, 1))
		for x := range w {
			s := 0.35 + 0.6*float64(x)/float64(max(w-1, 1))
			img.Set(x, y, colorful.Hsl(hue, s, l).Clamped())
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ genui.ImageProvider = (*Provider)(nil)
