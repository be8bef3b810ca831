package session

import "time"

// EventType identifies the kind of event occurring during a session.
type EventType string

const (
	// EventSend fires before a request is sent.
	EventSend EventType = "send"

	// EventReply fires after a reply has been applied.
	EventReply EventType = "reply"

	// EventError fires when an exchange fails.
	EventError EventType = "error"

	// EventHealth fires after each liveness check.
	EventHealth EventType = "health"
)

// Event represents an observable occurrence during a session.
type Event struct {
	Type EventType

	// ContextID is the conversation id.
	ContextID string

	// Prompt is the prompt sent, for EventSend and EventReply.
	Prompt string

	// Widgets is the number of widget values sent with the request.
	Widgets int

	// Duration is the elapsed time of the exchange or health check.
	Duration time.Duration

	// Error is set for EventError and failed health checks.
	Error error

	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
	}
}
