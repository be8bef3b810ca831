package a2a

import (
	"encoding/json"
	"fmt"
)

// Result and event kinds.
const (
	KindMessage        = "message"
	KindTask           = "task"
	KindStatusUpdate   = "status-update"
	KindArtifactUpdate = "artifact-update"
)

// Event is one result object of a JSON-RPC response: a message, a task, or a
// streaming update.
type Event interface {
	EventKind() string
}

func (Message) EventKind() string                 { return KindMessage }
func (*Task) EventKind() string                   { return KindTask }
func (TaskStatusUpdateEvent) EventKind() string   { return KindStatusUpdate }
func (TaskArtifactUpdateEvent) EventKind() string { return KindArtifactUpdate }

// DecodeEvent decodes a JSON-RPC result into its concrete event type.
// Results without a "kind" are classified by shape.
func DecodeEvent(raw json.RawMessage) (Event, error) {
	var probe struct {
		Kind     string          `json:"kind"`
		Role     string          `json:"role"`
		Parts    json.RawMessage `json:"parts"`
		Status   json.RawMessage `json:"status"`
		Final    *bool           `json:"final"`
		History  json.RawMessage `json:"history"`
		Artifact json.RawMessage `json:"artifact"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}

	kind := probe.Kind
	if kind == "" {
		switch {
		case probe.Artifact != nil:
			kind = KindArtifactUpdate
		case probe.Status != nil && probe.Final != nil:
			kind = KindStatusUpdate
		case probe.Status != nil || probe.History != nil:
			kind = KindTask
		case probe.Parts != nil:
			kind = KindMessage
		default:
			return nil, fmt.Errorf("unrecognized result shape")
		}
	}

	switch kind {
	case KindMessage:
		var m Message
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("failed to parse message: %w", err)
		}
		return m, nil
	case KindTask:
		var t Task
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to parse task: %w", err)
		}
		return &t, nil
	case KindStatusUpdate:
		var u TaskStatusUpdateEvent
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, fmt.Errorf("failed to parse status update: %w", err)
		}
		return u, nil
	case KindArtifactUpdate:
		var u TaskArtifactUpdateEvent
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, fmt.Errorf("failed to parse artifact update: %w", err)
		}
		return u, nil
	default:
		return nil, fmt.Errorf("unknown result kind %q", kind)
	}
}

// AgentMessage returns the most recent agent-authored message carried by an
// event. For a task, the status message wins over history; within history
// the last agent message wins.
func AgentMessage(ev Event) (*Message, bool) {
	switch e := ev.(type) {
	case Message:
		if e.IsAgent() {
			return &e, true
		}
	case *Message:
		if e != nil && e.IsAgent() {
			return e, true
		}
	case *Task:
		if e == nil {
			return nil, false
		}
		if m := e.Status.Message; m != nil && m.IsAgent() {
			return m, true
		}
		for i := len(e.History) - 1; i >= 0; i-- {
			if e.History[i].IsAgent() {
				return &e.History[i], true
			}
		}
	case TaskStatusUpdateEvent:
		if m := e.Status.Message; m != nil && m.IsAgent() {
			return m, true
		}
	}
	return nil, false
}

// LatestAgentMessage scans events in order and returns the last
// agent-authored message among them.
func LatestAgentMessage(events []Event) (*Message, bool) {
	var latest *Message
	for _, ev := range events {
		if m, ok := AgentMessage(ev); ok {
			latest = m
		}
	}
	return latest, latest != nil
}
