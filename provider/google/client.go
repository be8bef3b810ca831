package google

import (
	"context"
	"strings"

	"github.com/spetersoncode/genui"
	"google.golang.org/genai"
)

// DefaultImageModel is the Gemini model used when no model is configured.
const DefaultImageModel = "gemini-2.5-flash-image"

// Client wraps the Google GenAI SDK to implement genui.ImageProvider.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a new Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, genui.NewPermanentError("google: missing API key", 0, genui.ErrEmptyInput)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	c := &Client{
		client: client,
		model:  DefaultImageModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ClientOption configures the Google client.
type ClientOption func(*Client)

// WithModel sets the default model for requests. Empty keeps the default.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// Model returns the default model.
func (c *Client) Model() string {
	return c.model
}

// isImagen reports whether the model is served by the Imagen endpoint
// rather than multimodal GenerateContent.
func isImagen(model string) bool {
	return strings.HasPrefix(strings.TrimPrefix(model, "models/"), "imagen")
}

var _ genui.ImageProvider = (*Client)(nil)
