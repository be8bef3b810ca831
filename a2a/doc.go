// Package a2a implements the parts of the A2A (Agent-to-Agent) protocol
// version 0.3 used by this module: JSON-RPC 2.0 over HTTP with streaming via
// Server-Sent Events.
//
// # Types
//
// [Message], [Task], [TaskStatusUpdateEvent] and [TaskArtifactUpdateEvent]
// model the wire objects. Message parts are the closed set [TextPart],
// [FilePart] and [DataPart]; parts sent without a "kind" by older peers are
// inferred from their keys by [UnmarshalPart].
//
// # Client
//
// [Client] calls a remote agent. [Client.Stream] opens a message/stream call
// and returns a [Stream] of decoded events; [Client.StreamMessage] consumes
// the whole stream and returns the most recent agent-authored message,
// whichever result shape carried it (a direct message, a status update, or a
// task history). Failures are distinguishable:
//
//   - transport failures are transient [genui.Error] values with status code 0
//   - non-2xx responses wrap a [*StatusError]
//   - JSON-RPC errors are returned as [*RPCError]
//   - a stream without any agent message yields [genui.ErrNoResponse]
//
// The client never retries.
//
// # Server
//
// [Handler] serves message/send and message/stream for an [Executor]. Use
// [Mapper] inside an executor to build the task's events:
//
//	func (a *Agent) ExecuteStream(ctx context.Context, req a2a.SendMessageRequest) <-chan a2a.Event {
//	    out := make(chan a2a.Event, 100)
//	    go func() {
//	        defer close(out)
//	        m := a2a.NewMapper("", req.Message.ContextID)
//	        out <- m.Submitted(req.Message)
//	        out <- m.Working("Generating your image...")
//	        out <- m.InputRequired(m.AgentMessage(a2a.NewTextPart("done")))
//	    }()
//	    return out
//	}
//
// # Thread Safety
//
// Client is safe for concurrent use. Stream and Mapper are not.
package a2a
