package a2ui

import (
	"encoding/json"
	"log/slog"
)

// Processor applies protocol messages to a surface registry.
type Processor struct {
	registry *Registry
	logger   *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithLogger sets the processor logger.
func WithLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithRegistry makes the processor apply messages to an existing registry.
func WithRegistry(r *Registry) ProcessorOption {
	return func(p *Processor) {
		p.registry = r
	}
}

// NewProcessor creates a processor with an empty registry.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = NewRegistry()
	}
	return p
}

// Process applies a batch of messages strictly in order. Messages may
// target surfaces that were never introduced by beginRendering; those
// surfaces are created on first use.
func (p *Processor) Process(msgs []Message) {
	for _, m := range msgs {
		p.apply(m)
	}
}

// ProcessRaw decodes and applies raw messages in order. Entries that fail to
// decode are logged and skipped. It returns the number of messages applied.
func (p *Processor) ProcessRaw(raws []json.RawMessage) int {
	applied := 0
	for i, raw := range raws {
		m, err := ParseMessage(raw)
		if err != nil {
			p.logger.Warn("skipping undecodable A2UI message", "index", i, "error", err)
			continue
		}
		if p.apply(m) {
			applied++
		}
	}
	return applied
}

func (p *Processor) apply(m Message) bool {
	switch msg := m.(type) {
	case BeginRendering:
		p.registry.BeginRendering(msg.SurfaceID, msg.Root)
	case SurfaceUpdate:
		for _, err := range msg.Skipped {
			p.logger.Warn("skipping invalid component", "surface_id", msg.SurfaceID, "error", err)
		}
		p.registry.ApplySurfaceUpdate(msg.SurfaceID, msg.Components)
	case DataModelUpdate:
		p.registry.MergeAt(msg.SurfaceID, msg.Path, msg.Contents)
	default:
		p.logger.Debug("ignoring A2UI message", "kind", m.Key(), "surface_id", m.Surface())
		return false
	}
	p.logger.Debug("applied A2UI message", "kind", m.Key(), "surface_id", m.Surface())
	return true
}

// ClearAll removes every surface.
func (p *Processor) ClearAll() {
	p.registry.ClearAll()
}

// Surfaces returns snapshots of all surfaces in creation order.
func (p *Processor) Surfaces() []Surface {
	return p.registry.Surfaces()
}

// Registry returns the registry the processor writes to.
func (p *Processor) Registry() *Registry {
	return p.registry
}
