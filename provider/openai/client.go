package openai

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spetersoncode/genui"
)

// DefaultImageModel is the model used when none is configured.
const DefaultImageModel = "dall-e-3"

// Client wraps the OpenAI SDK to implement genui.ImageProvider.
type Client struct {
	client  *openai.Client
	model   string
	baseURL string
}

// New creates a new OpenAI client with the given API key. SDK-level retries
// are disabled; callers retry categorized errors themselves.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{model: DefaultImageModel}
	for _, opt := range opts {
		opt(c)
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(c.baseURL))
	}
	client := openai.NewClient(reqOpts...)
	c.client = &client
	return c
}

// ClientOption configures the OpenAI client.
type ClientOption func(*Client)

// WithModel sets the default model for requests. Empty keeps the default.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at a compatible endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// Model returns the default model.
func (c *Client) Model() string {
	return c.model
}

var _ genui.ImageProvider = (*Client)(nil)
