package a2a

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/spetersoncode/genui/sse"
)

// Handler serves the A2A JSON-RPC methods message/send and message/stream
// on top of an Executor.
type Handler struct {
	executor Executor
	card     *AgentCard
	logger   *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAgentCard sets the card served on the well-known path.
func WithAgentCard(card AgentCard) HandlerOption {
	return func(h *Handler) {
		h.card = &card
	}
}

// WithHandlerLogger sets the handler logger.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a handler for the given executor.
func NewHandler(executor Executor, opts ...HandlerOption) *Handler {
	h := &Handler{executor: executor, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mux returns a ServeMux with the JSON-RPC endpoint at "/", the agent card
// and a /health liveness endpoint.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", h)
	mux.HandleFunc(AgentCardPath, h.serveCard)
	mux.HandleFunc("/health", healthHandler)
	return mux
}

// ServeHTTP handles A2A protocol requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		h.logger.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req jsonRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid JSON-RPC request", "error", err)
		writeJSON(w, newErrorResponse(nil, CodeParseError, "Parse error: "+err.Error()))
		return
	}

	if req.JSONRPC != "2.0" {
		writeJSON(w, newErrorResponse(req.ID, CodeInvalidRequest, "Invalid JSON-RPC version"))
		return
	}

	log := h.logger.With("method", req.Method, "id", req.ID)

	if req.Method != MethodSendMessage && req.Method != MethodStreamMessage {
		log.Warn("unknown method")
		writeJSON(w, newErrorResponse(req.ID, CodeMethodNotFound, "Method not found: "+req.Method))
		return
	}

	var params SendMessageRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		log.Warn("invalid params", "error", err)
		writeJSON(w, newErrorResponse(req.ID, CodeInvalidParams, "Invalid params: "+err.Error()))
		return
	}

	extensions := ParseExtensions(r.Header.Get(ExtensionsHeader))
	ctx := ContextWithExtensions(r.Context(), extensions)
	log.Info("A2A request received", "context_id", params.Message.ContextID, "parts", len(params.Message.Parts), "extensions", extensions)

	events := h.executor.ExecuteStream(ctx, params)

	if req.Method == MethodSendMessage {
		task := Collect(events)
		if task == nil {
			writeJSON(w, newErrorResponse(req.ID, CodeInternalError, "Execution produced no result"))
			return
		}
		resp, err := newResponse(req.ID, task)
		if err != nil {
			writeJSON(w, newErrorResponse(req.ID, CodeInternalError, err.Error()))
			return
		}
		writeJSON(w, resp)
		log.Info("A2A request completed", "task_id", task.ID, "status", task.Status.State,
			"duration_ms", time.Since(start).Milliseconds())
		return
	}

	stream, err := sse.NewWriter(w)
	if err != nil {
		log.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		// Drain so the executor goroutine can finish.
		for range events {
		}
		return
	}

	for evt := range events {
		resp, err := newResponse(req.ID, evt)
		if err != nil {
			log.Error("failed to marshal event", "error", err, "event_type", evt.EventKind())
			continue
		}
		if err := stream.Write(resp); err != nil {
			log.Error("failed to write SSE event", "error", err, "event_type", evt.EventKind())
			for range events {
			}
			return
		}
		log.Debug("sent A2A event", "event_type", evt.EventKind(), "event_num", stream.Sent())
	}

	log.Info("A2A streaming request completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"events_sent", stream.Sent(),
	)
}

func (h *Handler) serveCard(w http.ResponseWriter, r *http.Request) {
	if h.card == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.card)
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, resp jsonRPCResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
