package openai

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/spetersoncode/genui"
)

// GenerateImage generates images from a text prompt. Reference images are
// ignored: the generations endpoint is text-only.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...genui.ImageOption) (*genui.ImageResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, genui.NewUserInputError("openai: empty prompt", 0, genui.ErrEmptyInput)
	}
	options := genui.ApplyImageOptions(opts...)

	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ImageGenerateParams{
		Model:  openai.ImageModel(model),
		Prompt: prompt,
		Size:   openai.ImageGenerateParamsSize(supportedSize(model, options.Size)),
	}

	// DALL-E 3 only supports n=1
	n := options.Count
	if n <= 0 || model == "dall-e-3" {
		n = 1
	}
	params.N = openai.Int(int64(n))

	// gpt-image models always return base64 and reject the parameter.
	if strings.HasPrefix(model, "dall-e") {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormat(genui.ImageFormatBase64)
	}

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	out := &genui.ImageResponse{}
	for _, img := range resp.Data {
		if img.B64JSON == "" {
			continue
		}
		decoded, err := genui.DecodeImage("", img.B64JSON)
		if err != nil {
			return nil, genui.NewPermanentError("openai: undecodable image", 0, err)
		}
		out.Images = append(out.Images, genui.GeneratedImage{
			Image:         decoded,
			RevisedPrompt: img.RevisedPrompt,
		})
	}
	return out, nil
}

// supportedSize maps a requested size onto one the model accepts.
// DALL-E 3 has no square sizes below 1024.
func supportedSize(model string, size genui.ImageSize) genui.ImageSize {
	if size == "" {
		return genui.ImageSize1024x1024
	}
	if model == "dall-e-3" && (size == genui.ImageSize256x256 || size == genui.ImageSize512x512) {
		return genui.ImageSize1024x1024
	}
	return size
}
