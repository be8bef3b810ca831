package google

import (
	"context"
	"strings"

	"github.com/spetersoncode/genui"
	"google.golang.org/genai"
)

// GenerateImage generates images from a text prompt. Gemini image models
// receive reference images inline alongside the prompt and ignore the size
// option; Imagen models are text-only and ignore references.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...genui.ImageOption) (*genui.ImageResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, genui.NewUserInputError("google: empty prompt", 0, genui.ErrEmptyInput)
	}
	options := genui.ApplyImageOptions(opts...)

	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	if isImagen(model) {
		return c.generateImagen(ctx, model, prompt, options)
	}
	return c.generateGemini(ctx, model, prompt, options)
}

func (c *Client) generateGemini(ctx context.Context, model, prompt string, options *genui.ImageOptions) (*genui.ImageResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	resp, err := c.client.Models.GenerateContent(ctx, model, buildContents(prompt, options.References), config)
	if err != nil {
		return nil, wrapError(err)
	}

	out := &genui.ImageResponse{}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, nil
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			out.Images = append(out.Images, genui.GeneratedImage{
				Image: genui.Image{
					MIMEType: mimeOrDefault(part.InlineData.MIMEType),
					Data:     part.InlineData.Data,
				},
			})
		}
	}
	out.Text = text.String()
	return out, nil
}

func (c *Client) generateImagen(ctx context.Context, model, prompt string, options *genui.ImageOptions) (*genui.ImageResponse, error) {
	config := &genai.GenerateImagesConfig{}

	// Imagen supports 1-4
	n := options.Count
	if n <= 0 {
		n = 1
	}
	if n > 4 {
		n = 4
	}
	config.NumberOfImages = int32(n)

	if options.Size != "" {
		config.AspectRatio = convertSizeToAspectRatio(options.Size)
	}

	resp, err := c.client.Models.GenerateImages(ctx, model, prompt, config)
	if err != nil {
		return nil, wrapError(err)
	}

	out := &genui.ImageResponse{}
	for _, img := range resp.GeneratedImages {
		if img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		out.Images = append(out.Images, genui.GeneratedImage{
			Image: genui.Image{
				MIMEType: mimeOrDefault(img.Image.MIMEType),
				Data:     img.Image.ImageBytes,
			},
			RevisedPrompt: img.EnhancedPrompt,
		})
	}
	return out, nil
}

// buildContents places reference images ahead of the prompt text in a
// single user turn.
func buildContents(prompt string, refs []genui.Image) []*genai.Content {
	parts := make([]*genai.Part, 0, len(refs)+1)
	for _, ref := range refs {
		if ref.Empty() {
			continue
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				Data:     ref.Data,
				MIMEType: mimeOrDefault(ref.MIMEType),
			},
		})
	}
	parts = append(parts, &genai.Part{Text: prompt})
	return []*genai.Content{{Role: "user", Parts: parts}}
}

func mimeOrDefault(mimeType string) string {
	if mimeType == "" {
		return "image/png"
	}
	return mimeType
}

// convertSizeToAspectRatio maps ImageSize to aspect ratio strings.
func convertSizeToAspectRatio(size genui.ImageSize) string {
	switch size {
	case genui.ImageSize1024x1792:
		return "9:16" // Portrait
	case genui.ImageSize1792x1024:
		return "16:9" // Landscape
	default:
		return "1:1"
	}
}
