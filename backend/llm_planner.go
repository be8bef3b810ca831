package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2ui"
	"github.com/tidwall/gjson"
)

// DefaultPlannerModel is the Claude model used for widget planning.
const DefaultPlannerModel = "claude-haiku-4-5"

const analysisPrompt = `Analyze this image generation request and decide which interactive controls (widgets) would help the user fine-tune the result.

User request: %q

Return an empty widgets array when the request asks to apply or use existing settings, or when it is a simple generation that needs no tuning.

Widget types:
- "slider": numeric adjustment (brightness, size, intensity). properties: min, max, default, step
- "dropdown": choice among options. properties: options (array of strings), default
- "text-input": free text parameter. properties: default
- "toggle": on/off option. properties: default (boolean)
- "color-picker": a single color. properties: default (hex)
- "range-dual": min/max range. properties: min, max, defaultMin, defaultMax
- "color-tone-control": palette with hue, saturation, lightness and temperature
- "sketch-canvas": a drawing used as a layout guide

Each widget needs an id (e.g. "brightness-slider"), a type, a label and properties.

Respond with JSON only:
{"widgets": [{"id": "...", "type": "...", "label": "...", "properties": {...}}], "reasoning": "brief explanation"}`

// LLMPlanner asks a Claude model for widget specifications.
type LLMPlanner struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// LLMPlannerOption configures an LLMPlanner.
type LLMPlannerOption func(*llmPlannerConfig)

type llmPlannerConfig struct {
	model   string
	baseURL string
}

// WithPlannerModel sets the model. Empty keeps the default.
func WithPlannerModel(model string) LLMPlannerOption {
	return func(c *llmPlannerConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithPlannerBaseURL points the planner at a compatible endpoint.
func WithPlannerBaseURL(url string) LLMPlannerOption {
	return func(c *llmPlannerConfig) {
		c.baseURL = url
	}
}

// NewLLMPlanner creates a planner backed by the Anthropic API.
func NewLLMPlanner(apiKey string, opts ...LLMPlannerOption) *LLMPlanner {
	cfg := llmPlannerConfig{model: DefaultPlannerModel}
	for _, opt := range opts {
		opt(&cfg)
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	client := anthropic.NewClient(reqOpts...)
	return &LLMPlanner{client: &client, model: cfg.model, maxTokens: 1024}
}

// Plan implements Planner.
func (p *LLMPlanner) Plan(ctx context.Context, prompt string) (Plan, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(analysisPrompt, prompt))),
		},
	})
	if err != nil {
		return Plan{}, wrapPlannerError(err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return ParsePlan(text.String())
}

// ParsePlan reads a {"widgets": [...], "reasoning": "..."} reply. Surrounding
// prose and code fences are ignored. Widgets without an id or type are dropped.
func ParsePlan(reply string) (Plan, error) {
	body := reply
	if start, end := strings.Index(body, "{"), strings.LastIndex(body, "}"); start >= 0 && end > start {
		body = body[start : end+1]
	}
	if !gjson.Valid(body) {
		return Plan{}, genui.NewPermanentError("planner: reply is not JSON", 0, errors.New(truncate(reply, 120)))
	}

	plan := Plan{Reasoning: gjson.Get(body, "reasoning").String()}
	gjson.Get(body, "widgets").ForEach(func(_, w gjson.Result) bool {
		lw := a2ui.LegacyWidget{
			ID:    w.Get("id").String(),
			Type:  w.Get("type").String(),
			Label: w.Get("label").String(),
		}
		if lw.ID == "" || lw.Type == "" {
			return true
		}
		if props, ok := w.Get("properties").Value().(map[string]any); ok {
			lw.Properties = props
		}
		plan.Widgets = append(plan.Widgets, lw)
		return true
	})
	return plan, nil
}

func wrapPlannerError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return genui.NewStatusError("planner: request failed", apiErr.StatusCode, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ Planner = (*LLMPlanner)(nil)
