package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2a"
	"github.com/spetersoncode/genui/a2ui"
	"github.com/spetersoncode/genui/render"
)

const (
	// DefaultHealthInterval is the monitor period used for non-positive
	// intervals.
	DefaultHealthInterval = 10 * time.Second
	// DefaultHealthTimeout bounds a single liveness check.
	DefaultHealthTimeout = 5 * time.Second
)

// Reply is an applied agent reply.
type Reply struct {
	// Text joins the reply's text parts.
	Text string
	// Images holds the inline images in order.
	Images []genui.Image
	// Panels is the rendered UI, one panel per surface plus one for legacy
	// widgets.
	Panels []render.Panel
	// Ignored counts reply parts that matched no known shape.
	Ignored int
}

// Option configures a Session.
type Option func(*Session)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) {
		s.httpClient = c
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithContextID sets the conversation id instead of generating one.
func WithContextID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.contextID = id
		}
	}
}

// WithAccumulate keeps surfaces from earlier replies instead of clearing
// them before each new batch.
func WithAccumulate(on bool) Option {
	return func(s *Session) {
		s.accumulate = on
	}
}

// WithLegacyWidgets sends widget values as legacy a2ui parts instead of an
// update_widgets user action.
func WithLegacyWidgets(on bool) Option {
	return func(s *Session) {
		s.legacy = on
	}
}

// WithEvents sets a channel receiving session events. Events are sent
// without blocking and dropped when the channel is full.
func WithEvents(ch chan<- Event) Option {
	return func(s *Session) {
		s.events = ch
	}
}

// Session is one conversation with an agent. Send, Refine and Close may be
// called from any goroutine; overlapping exchanges are rejected.
type Session struct {
	contextID  string
	httpClient *http.Client
	logger     *slog.Logger
	events     chan<- Event
	accumulate bool
	legacy     bool

	client *a2a.Client
	busy   atomic.Bool
	closed atomic.Bool

	mu         sync.Mutex
	processor  *a2ui.Processor
	renderer   *render.Renderer
	panels     []render.Panel
	lastPrompt string
}

// New creates a session against the agent's JSON-RPC endpoint. Requests
// carry the A2UI extension header.
func New(endpoint string, opts ...Option) *Session {
	s := &Session{
		contextID: uuid.NewString(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	clientOpts := []a2a.ClientOption{
		a2a.WithExtensions(a2ui.ExtensionURI),
		a2a.WithLogger(s.logger),
	}
	if s.httpClient != nil {
		clientOpts = append(clientOpts, a2a.WithHTTPClient(s.httpClient))
	}
	s.client = a2a.NewClient(endpoint, clientOpts...)
	s.processor = a2ui.NewProcessor(a2ui.WithLogger(s.logger))
	s.renderer = render.New(render.WithLogger(s.logger))
	s.logger = s.logger.With("context_id", s.contextID)
	return s
}

// ContextID returns the conversation id sent with every request.
func (s *Session) ContextID() string {
	return s.contextID
}

// Client returns the underlying A2A client.
func (s *Session) Client() *a2a.Client {
	return s.client
}

// LastPrompt returns the prompt of the last successful exchange.
func (s *Session) LastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPrompt
}

// Send sends prompt together with the current widget values and applies the
// reply. On error the rendered UI is left unchanged.
func (s *Session) Send(ctx context.Context, prompt string) (*Reply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, genui.NewUserInputError("prompt is required", 0, genui.ErrEmptyInput)
	}
	if s.closed.Load() {
		return nil, genui.ErrClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, genui.ErrBusy
	}
	defer s.busy.Store(false)

	start := time.Now()
	msg, widgets, err := s.request(prompt)
	if err != nil {
		return nil, err
	}
	emit(s.events, Event{Type: EventSend, ContextID: s.contextID, Prompt: prompt, Widgets: widgets})
	s.logger.Debug("sending prompt", "prompt", prompt, "widgets", widgets, "legacy", s.legacy)

	agentMsg, err := s.client.StreamMessage(ctx, a2a.SendMessageRequest{Message: msg})
	if err != nil {
		s.logger.Warn("exchange failed", "error", err)
		emit(s.events, Event{Type: EventError, ContextID: s.contextID, Prompt: prompt, Duration: time.Since(start), Error: err})
		return nil, err
	}
	if s.closed.Load() {
		return nil, genui.ErrClosed
	}

	reply := s.apply(*agentMsg, prompt)
	emit(s.events, Event{Type: EventReply, ContextID: s.contextID, Prompt: prompt, Duration: time.Since(start)})
	return reply, nil
}

// Refine resends the last prompt with the current widget values.
func (s *Session) Refine(ctx context.Context) (*Reply, error) {
	prompt := s.LastPrompt()
	if prompt == "" {
		return nil, genui.NewUserInputError("nothing to refine yet", 0, genui.ErrEmptyInput)
	}
	return s.Send(ctx, prompt)
}

// request builds the outbound message and reports how many widget values
// it carries.
func (s *Session) request(prompt string) (a2a.Message, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.renderer.WidgetValues()
	parts := []a2a.Part{a2a.NewTextPart(prompt + a2ui.Adjustments(values))}

	if s.legacy {
		legacy := s.renderer.LegacyParts()
		for _, w := range legacy {
			p, err := a2ui.NewLegacyPart(w)
			if err != nil {
				return a2a.Message{}, 0, fmt.Errorf("encode widget %s: %w", w.ID, err)
			}
			parts = append(parts, p)
		}
		return a2a.NewMessageWithContext(a2a.MessageRoleUser, s.contextID, "", parts...), len(legacy), nil
	}

	sketches := s.renderer.Sketches()
	if len(values) > 0 || len(sketches) > 0 {
		actionCtx := map[string]any{
			"prompt":  prompt,
			"widgets": values,
		}
		if len(sketches) > 0 {
			urls := make(map[string]any, len(sketches))
			for id, img := range sketches {
				urls[id] = a2ui.DataURL(img)
			}
			actionCtx["sketches"] = urls
		}
		p, err := a2ui.NewUserActionPart(a2ui.UserAction{Name: a2ui.ActionUpdateWidgets, Context: actionCtx})
		if err != nil {
			return a2a.Message{}, 0, fmt.Errorf("encode widget values: %w", err)
		}
		parts = append(parts, p)
	}
	return a2a.NewMessageWithContext(a2a.MessageRoleUser, s.contextID, "", parts...), len(values) + len(sketches), nil
}

// apply replaces the rendered UI with the reply's messages and legacy
// widgets as one batch.
func (s *Session) apply(msg a2a.Message, prompt string) *Reply {
	env := a2ui.DecodeEnvelope(msg, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.accumulate {
		s.processor.ClearAll()
	}
	s.processor.Process(env.Messages)
	panels := s.renderer.Render(s.processor.Surfaces())
	if len(env.Legacy) > 0 {
		panels = append(panels, s.renderer.FromLegacy(env.Legacy))
	}
	s.panels = panels
	s.lastPrompt = prompt

	s.logger.Info("applied reply",
		"messages", len(env.Messages),
		"legacy", len(env.Legacy),
		"images", len(env.Images()),
		"ignored", env.Ignored,
	)
	return &Reply{
		Text:    env.Text(),
		Images:  env.Images(),
		Panels:  panels,
		Ignored: env.Ignored,
	}
}

// Panels returns the currently rendered UI.
func (s *Session) Panels() []render.Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panels
}

// Surfaces returns a snapshot of the current surfaces.
func (s *Session) Surfaces() []a2ui.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processor.Surfaces()
}

// View renders the current UI as terminal text.
func (s *Session) View(opts render.ViewOptions) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.View(s.panels, opts)
}

// Interactive returns the ids of focusable widgets in display order.
func (s *Session) Interactive() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.Interactive()
}

// Widget returns a copy of a rendered widget.
func (s *Session) Widget(id string) (render.Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.Widget(id)
}

// Value returns a widget's current local value.
func (s *Session) Value(id string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.Value(id)
}

// Values returns the widget values the next request will carry.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.WidgetValues()
}

// Input sets a widget's local value.
func (s *Session) Input(id string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.Input(id, v)
}

// Adjust nudges a widget's local value by step units.
func (s *Session) Adjust(id string, step int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.Adjust(id, step)
}

// Close tears the session down. Later calls to Send return genui.ErrClosed.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processor.ClearAll()
	s.panels = s.renderer.Render(nil)
	s.logger.Debug("session closed")
	return nil
}

// Monitor checks the agent's health endpoint immediately and then every
// interval, reporting each result to fn, until ctx is done. It touches no
// surface state.
func (s *Session) Monitor(ctx context.Context, interval time.Duration, fn func(error)) {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	check := func() {
		checkCtx, cancel := context.WithTimeout(ctx, min(interval, DefaultHealthTimeout))
		defer cancel()
		start := time.Now()
		err := s.client.Health(checkCtx)
		if ctx.Err() != nil {
			return
		}
		emit(s.events, Event{Type: EventHealth, ContextID: s.contextID, Duration: time.Since(start), Error: err})
		if fn != nil {
			fn(err)
		}
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
