package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2a"
	"github.com/spetersoncode/genui/a2ui"
	"github.com/spetersoncode/genui/retry"
	"github.com/spetersoncode/genui/store"
)

// ProcessingMessage is the progress note sent while an image is generated.
const ProcessingMessage = "Generating your image..."

// DefaultStateTTL bounds how long an idle conversation is remembered.
const DefaultStateTTL = time.Hour

var applyWords = []string{"apply", "adjustment"}

// Agent generates images for A2A requests. It is safe for concurrent use.
type Agent struct {
	provider   genui.ImageProvider
	planner    Planner
	states     *store.Typed[ContextState]
	validator  *a2ui.Validator
	retry      retry.Config
	logger     *slog.Logger
	model      string
	timeout    time.Duration
	legacyOnly bool
}

// Option configures an Agent.
type Option func(*Agent)

// WithPlanner sets the widget planner. The default is KeywordPlanner.
func WithPlanner(p Planner) Option {
	return func(a *Agent) {
		if p != nil {
			a.planner = p
		}
	}
}

// WithStore sets the adapter conversation state is kept in. The default is
// an in-memory adapter with DefaultStateTTL.
func WithStore(adapter store.Adapter) Option {
	return func(a *Agent) {
		a.states = store.NewTyped[ContextState](adapter)
	}
}

// WithValidation checks emitted A2UI messages against the protocol schema.
func WithValidation(v *a2ui.Validator) Option {
	return func(a *Agent) {
		a.validator = v
	}
}

// WithRetry sets the retry policy for provider calls.
func WithRetry(cfg retry.Config) Option {
	return func(a *Agent) {
		a.retry = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithImageModel overrides the provider's default model.
func WithImageModel(model string) Option {
	return func(a *Agent) {
		a.model = model
	}
}

// WithTimeout bounds a single request. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(a *Agent) {
		a.timeout = d
	}
}

// WithLegacyWidgets makes the agent reply with legacy widget parts instead
// of A2UI surfaces.
func WithLegacyWidgets(on bool) Option {
	return func(a *Agent) {
		a.legacyOnly = on
	}
}

// New creates an agent generating images with provider.
func New(provider genui.ImageProvider, opts ...Option) (*Agent, error) {
	if provider == nil {
		return nil, errors.New("backend: nil image provider")
	}
	a := &Agent{
		provider: provider,
		planner:  KeywordPlanner{},
		retry:    retry.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.states == nil {
		a.states = store.NewTyped[ContextState](store.NewMemoryAdapter(store.WithTTL(DefaultStateTTL)))
	}
	return a, nil
}

// State returns the remembered state of a conversation.
func (a *Agent) State(ctx context.Context, contextID string) (ContextState, bool, error) {
	return a.states.Get(ctx, contextID)
}

// ExecuteStream implements a2a.Executor.
func (a *Agent) ExecuteStream(ctx context.Context, req a2a.SendMessageRequest) <-chan a2a.Event {
	out := make(chan a2a.Event, 4)
	go func() {
		defer close(out)
		if a.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}
		a.run(ctx, req, func(ev a2a.Event) bool {
			select {
			case out <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return out
}

func (a *Agent) run(ctx context.Context, params a2a.SendMessageRequest, emit func(a2a.Event) bool) {
	mapper := a2a.NewMapper(params.Message.TaskID, params.Message.ContextID)
	useUI := a2a.ExtensionRequested(ctx, a2ui.ExtensionURI)
	log := a.logger.With("context_id", mapper.ContextID(), "task_id", mapper.TaskID(), "ui", useUI)

	if !emit(mapper.Submitted(params.Message)) || !emit(mapper.Working(ProcessingMessage)) {
		return
	}

	req := ParseRequest(params.Message, log)
	if req.Query == "" {
		emit(mapper.Failed("I'm sorry, I couldn't generate the image. Error: " + genui.ErrEmptyInput.Error()))
		return
	}
	log.Info("processing request", "query", req.Query, "action", req.Action, "widgets", len(req.Widgets), "legacy", req.Legacy)

	reply, err := a.generate(ctx, mapper, req, useUI, log)
	if err != nil {
		log.Error("image generation failed", "error", err)
		emit(mapper.Failed("I'm sorry, I couldn't generate the image. Error: " + err.Error()))
		return
	}
	emit(mapper.InputRequired(reply))
}

func (a *Agent) generate(ctx context.Context, mapper *a2a.Mapper, req Request, useUI bool, log *slog.Logger) (a2a.Message, error) {
	analyze := !(req.HasInput() && containsAny(req.Query, applyWords...))

	var plan Plan
	if analyze {
		p, err := a.planner.Plan(ctx, req.Query)
		if err != nil {
			if ctx.Err() != nil {
				return a2a.Message{}, ctx.Err()
			}
			log.Warn("widget planning failed, continuing without widgets", "error", err)
		} else {
			plan = p
		}
	} else {
		log.Debug("skipping widget planning for applied adjustments")
	}

	st, err := a.states.Update(ctx, mapper.ContextID(), func(s *ContextState) {
		if analyze && !req.HasInput() && len(s.Widgets) > 0 {
			log.Debug("clearing stale widget values", "widgets", len(s.Widgets))
			s.reset()
		}
		s.apply(req.Widgets)
		if len(plan.Widgets) > 0 || (analyze && !req.HasInput()) {
			s.Plan = plan.Widgets
		}
		s.Prompt = req.Query
		s.Turns++
	})
	if err != nil {
		return a2a.Message{}, fmt.Errorf("load conversation state: %w", err)
	}

	prompt, refs := EnhancePrompt(req.Query, st)
	opts := a.imageOptions(st, plan, refs)
	log.Debug("generating image", "prompt", prompt, "references", len(refs))

	resp, err := retry.Do(ctx, a.retry, func(ctx context.Context) (*genui.ImageResponse, error) {
		return a.provider.GenerateImage(ctx, prompt, opts...)
	}, retry.WithLogger(log), retry.WithOperation("generate_image"))
	if err != nil {
		return a2a.Message{}, err
	}
	if len(resp.Images) == 0 {
		return a2a.Message{}, errors.New("no image data found in response")
	}
	img := resp.Images[0].Image

	st, err = a.states.Update(ctx, mapper.ContextID(), func(s *ContextState) {
		s.LastImage = &img
	})
	if err != nil {
		return a2a.Message{}, fmt.Errorf("save conversation state: %w", err)
	}

	return a.reply(mapper, img, plan, st, useUI, req.Legacy || a.legacyOnly, log)
}

func (a *Agent) imageOptions(st ContextState, plan Plan, refs []genui.Image) []genui.ImageOption {
	var opts []genui.ImageOption
	if a.model != "" {
		opts = append(opts, genui.WithImageModel(a.model))
	}
	values := st.values()
	size, ok := a2ui.AsNumber(values["size"])
	if !ok {
		size, ok = a2ui.AsNumber(plan.Values["size"])
	}
	if ok {
		opts = append(opts, genui.WithImageSize(genui.SquareSize(int(size))))
	}
	if st.Tone != nil {
		opts = append(opts, genui.WithHue(st.Tone.Hue))
	}
	for _, ref := range refs {
		opts = append(opts, genui.WithReferenceImage(ref))
	}
	return opts
}

// reply assembles the response message: text, the inline image right after
// it, then the widgets as surface messages or legacy parts.
func (a *Agent) reply(mapper *a2a.Mapper, img genui.Image, plan Plan, st ContextState, useUI, legacy bool, log *slog.Logger) (a2a.Message, error) {
	imagePart, err := a2ui.NewImagePart(img)
	if err != nil {
		return a2a.Message{}, err
	}
	parts := []a2a.Part{a2a.NewTextPart(ResponseText(plan.Widgets)), imagePart}

	if !useUI {
		return mapper.AgentMessage(parts...), nil
	}

	if legacy {
		for _, w := range st.Plan {
			p, err := a2ui.NewLegacyPart(withCurrentValues(w, st.Widgets[w.ID]))
			if err != nil {
				return a2a.Message{}, err
			}
			parts = append(parts, p)
		}
		return mapper.AgentMessage(parts...), nil
	}

	values := st.values()
	for k, v := range plan.Values {
		if _, ok := values[k]; !ok {
			values[k] = v
		}
	}
	msgs := Normalize(BuildSurface(img, st.Plan, values, log))
	if a.validator != nil {
		if err := a.validator.ValidateMessages(msgs); err != nil {
			log.Error("dropping invalid A2UI messages", "error", err)
			parts = append(parts, a2a.NewTextPart("I'm sorry, I'm having trouble generating the interface for that request right now."))
			return mapper.AgentMessage(parts...), nil
		}
	}
	for _, m := range msgs {
		p, err := a2ui.NewPart(m)
		if err != nil {
			return a2a.Message{}, err
		}
		parts = append(parts, p)
	}
	return mapper.AgentMessage(parts...), nil
}

// withCurrentValues seeds a legacy descriptor's defaults with the values the
// user last sent for it.
func withCurrentValues(w a2ui.LegacyWidget, fields map[string]any) a2ui.LegacyWidget {
	if len(fields) == 0 {
		return w
	}
	props := make(map[string]any, len(w.Properties)+len(fields))
	maps.Copy(props, w.Properties)
	for k, v := range fields {
		switch k {
		case "value":
			props["default"] = v
		case "min":
			props["defaultMin"] = v
		case "max":
			props["defaultMax"] = v
		case "sketch":
		default:
			props[k] = v
		}
	}
	w.Properties = props
	return w
}

var _ a2a.Executor = (*Agent)(nil)
