package a2a

import (
	"context"
	"slices"
	"strings"
)

// ExtensionsHeader carries the comma-separated extension URIs a client
// asks the agent to activate.
const ExtensionsHeader = "X-A2A-Extensions"

// Executor handles A2A task execution.
type Executor interface {
	// ExecuteStream runs a task and streams events. The channel closes when
	// execution completes.
	ExecuteStream(ctx context.Context, req SendMessageRequest) <-chan Event
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, req SendMessageRequest) <-chan Event

// ExecuteStream calls f.
func (f ExecutorFunc) ExecuteStream(ctx context.Context, req SendMessageRequest) <-chan Event {
	return f(ctx, req)
}

// SendMessageRequest represents the params of message/send and message/stream.
type SendMessageRequest struct {
	Message       Message                   `json:"message"`
	Configuration *SendMessageConfiguration `json:"configuration,omitempty"`
	Metadata      map[string]any            `json:"metadata,omitempty"`
}

// SendMessageConfiguration contains options for the send request.
type SendMessageConfiguration struct {
	AcceptedOutputModes []string `json:"acceptedOutputModes,omitempty"`
	HistoryLength       *int     `json:"historyLength,omitempty"`
	Blocking            bool     `json:"blocking,omitempty"`
}

type extensionsKey struct{}

// ContextWithExtensions returns a context carrying the extensions requested
// by the client.
func ContextWithExtensions(ctx context.Context, uris []string) context.Context {
	return context.WithValue(ctx, extensionsKey{}, uris)
}

// ExtensionsFromContext returns the extensions requested by the client.
func ExtensionsFromContext(ctx context.Context) []string {
	uris, _ := ctx.Value(extensionsKey{}).([]string)
	return uris
}

// ExtensionRequested reports whether uri was requested for this call.
func ExtensionRequested(ctx context.Context, uri string) bool {
	return slices.Contains(ExtensionsFromContext(ctx), uri)
}

// ParseExtensions splits an extensions header value.
func ParseExtensions(header string) []string {
	var uris []string
	for _, s := range strings.Split(header, ",") {
		if s = strings.TrimSpace(s); s != "" {
			uris = append(uris, s)
		}
	}
	return uris
}
