package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/sse"
)

// maxErrorBody bounds how much of a non-2xx response body is kept.
const maxErrorBody = 4096

// Client is an A2A protocol client for calling a remote agent.
type Client struct {
	endpoint   string
	httpClient *http.Client
	extensions []string
	logger     *slog.Logger
	nextID     atomic.Int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithExtensions sets the extension URIs sent in the X-A2A-Extensions header.
func WithExtensions(uris ...string) ClientOption {
	return func(client *Client) {
		client.extensions = append(client.extensions, uris...)
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a new A2A client for the given endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the JSON-RPC endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
	Body string
}

// Error returns the error message.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// SendMessage calls message/send and returns the result event, which is a
// Message or a *Task.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (Event, error) {
	resp, err := c.post(ctx, MethodSendMessage, req, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, genui.NewTransientError("failed to read response", 0, err)
	}

	var rpcResp jsonRPCResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	return DecodeEvent(rpcResp.Result)
}

// Stream calls message/stream and returns the open event stream. The caller
// must Close it.
func (c *Client) Stream(ctx context.Context, req SendMessageRequest) (*Stream, error) {
	resp, err := c.post(ctx, MethodStreamMessage, req, "text/event-stream")
	if err != nil {
		return nil, err
	}
	return &Stream{
		body:   resp.Body,
		reader: sse.NewReader(resp.Body, sse.WithLogger(c.logger)),
		logger: c.logger,
	}, nil
}

// StreamMessage calls message/stream, consumes the whole stream and returns
// the most recent agent-authored message. A JSON-RPC error in any frame
// aborts the exchange with an *RPCError; a stream without an agent message
// yields genui.ErrNoResponse.
func (c *Client) StreamMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	stream, err := c.Stream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var latest *Message
	for {
		ev, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if m, ok := AgentMessage(ev); ok {
			latest = m
		}
	}

	if latest == nil {
		return nil, genui.ErrNoResponse
	}
	return latest, nil
}

// AgentCard fetches the agent card from the well-known path.
func (c *Client) AgentCard(ctx context.Context) (*AgentCard, error) {
	resp, err := c.get(ctx, AgentCardPath)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var card AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("failed to parse agent card: %w", err)
	}
	return &card, nil
}

// Health performs a liveness check against the agent's /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.get(ctx, "/health")
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

func (c *Client) post(ctx context.Context, method string, params any, accept string) (*http.Response, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	body, err := json.Marshal(jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  paramsJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)
	if len(c.extensions) > 0 {
		httpReq.Header.Set(ExtensionsHeader, strings.Join(c.extensions, ", "))
	}

	c.logger.Debug("sending A2A request", "method", method, "endpoint", c.endpoint, "bytes", len(body))
	return c.do(httpReq)
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(httpReq)
}

func (c *Client) do(httpReq *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, genui.NewTransientError("request failed", 0, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		return nil, genui.NewStatusError("unexpected status", resp.StatusCode, statusErr)
	}
	return resp, nil
}

func (c *Client) resolve(path string) (string, error) {
	base, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

// Stream is an open message/stream response. It is not safe for concurrent use.
type Stream struct {
	body   io.ReadCloser
	reader *sse.Reader
	logger *slog.Logger
}

// Next returns the next event. It returns io.EOF when the stream ends and an
// *RPCError when the agent reported an error. Frames whose result cannot be
// decoded are skipped and logged.
func (s *Stream) Next() (Event, error) {
	for {
		frame, err := s.reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, genui.NewTransientError("stream interrupted", 0, err)
		}

		var rpcResp jsonRPCResponse
		if err := json.Unmarshal(frame, &rpcResp); err != nil {
			s.logger.Warn("skipping non JSON-RPC frame", "error", err)
			continue
		}
		if rpcResp.Error != nil {
			return nil, rpcResp.Error
		}
		result := rpcResp.Result
		if len(result) == 0 {
			// Some agents stream bare result objects without the envelope.
			result = frame
		}

		ev, err := DecodeEvent(result)
		if err != nil {
			s.logger.Warn("skipping undecodable result", "error", err)
			continue
		}
		return ev, nil
	}
}

// Skipped returns how many malformed SSE frames were dropped.
func (s *Stream) Skipped() int {
	return s.reader.Skipped()
}

// Close releases the response body.
func (s *Stream) Close() error {
	return s.body.Close()
}
