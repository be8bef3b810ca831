package a2a

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoExecutor replies with the request text and records requested extensions.
type echoExecutor struct {
	mu         sync.Mutex
	extensions []string
}

func (e *echoExecutor) requested() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.extensions
}

func (e *echoExecutor) ExecuteStream(ctx context.Context, req SendMessageRequest) <-chan Event {
	e.mu.Lock()
	e.extensions = ExtensionsFromContext(ctx)
	e.mu.Unlock()
	out := make(chan Event, 10)
	go func() {
		defer close(out)
		m := NewMapper("", req.Message.ContextID)
		out <- m.Submitted(req.Message)
		out <- m.Working("thinking")
		out <- m.InputRequired(m.AgentMessage(NewTextPart("echo: " + req.Message.TextContent())))
	}()
	return out
}

func postRPC(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestHandler_Stream(t *testing.T) {
	exec := &echoExecutor{}
	server := httptest.NewServer(NewHandler(exec, WithHandlerLogger(quietLogger())).Mux())
	defer server.Close()

	client := NewClient(server.URL, WithExtensions("urn:a", "urn:b"))
	msg := NewMessageWithContext(MessageRoleUser, "ctx-9", "", NewTextPart("ping"))

	reply, err := client.StreamMessage(context.Background(), SendMessageRequest{Message: msg})
	require.NoError(t, err)
	assert.Equal(t, "echo: ping", reply.TextContent())
	assert.Equal(t, "ctx-9", reply.ContextID)
	assert.Equal(t, []string{"urn:a", "urn:b"}, exec.requested())
	assert.True(t, ExtensionRequested(ContextWithExtensions(context.Background(), exec.requested()), "urn:b"))
}

func TestHandler_Send(t *testing.T) {
	server := httptest.NewServer(NewHandler(&echoExecutor{}, WithHandlerLogger(quietLogger())))
	defer server.Close()

	ev, err := NewClient(server.URL).SendMessage(context.Background(), SendMessageRequest{
		Message: NewMessage(MessageRoleUser, NewTextPart("hello")),
	})
	require.NoError(t, err)

	task, ok := ev.(*Task)
	require.True(t, ok)
	assert.Equal(t, TaskStateInputRequired, task.Status.State)
	reply, ok := AgentMessage(task)
	require.True(t, ok)
	assert.Equal(t, "echo: hello", reply.TextContent())
}

func TestHandler_Errors(t *testing.T) {
	server := httptest.NewServer(NewHandler(&echoExecutor{}, WithHandlerLogger(quietLogger())))
	defer server.Close()

	tests := []struct {
		name string
		body string
		code int
	}{
		{"parse error", `{not json`, CodeParseError},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"message/send"}`, CodeInvalidRequest},
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"tasks/get"}`, CodeMethodNotFound},
		{"invalid params", `{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"parts":[{"kind":"text","text":1}]}}}`, CodeInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postRPC(t, server.URL, tt.body)
			defer resp.Body.Close()

			var rpcResp jsonRPCResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
			require.NotNil(t, rpcResp.Error)
			assert.Equal(t, tt.code, rpcResp.Error.Code)
		})
	}

	t.Run("GET is rejected", func(t *testing.T) {
		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestHandler_CardMissing(t *testing.T) {
	server := httptest.NewServer(NewHandler(&echoExecutor{}).Mux())
	defer server.Close()

	resp, err := http.Get(server.URL + AgentCardPath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
