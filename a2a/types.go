package a2a

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProtocolVersion is the A2A protocol version spoken by this package.
const ProtocolVersion = "0.3.0"

// MessageRole indicates the originator of a message.
type MessageRole string

const (
	// MessageRoleUser is the role for messages from the user/client.
	MessageRoleUser MessageRole = "user"
	// MessageRoleAgent is the role for messages from the agent/server.
	MessageRoleAgent MessageRole = "agent"
)

// TaskState represents the lifecycle state of a task.
type TaskState string

const (
	TaskStateSubmitted     TaskState = "submitted"
	TaskStateWorking       TaskState = "working"
	TaskStateInputRequired TaskState = "input-required"
	TaskStateCompleted     TaskState = "completed"
	TaskStateCanceled      TaskState = "canceled"
	TaskStateFailed        TaskState = "failed"
	TaskStateRejected      TaskState = "rejected"
	TaskStateAuthRequired  TaskState = "auth-required"
)

// IsTerminal returns true if the state is a terminal state.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed, TaskStateRejected:
		return true
	default:
		return false
	}
}

// Message represents a single exchange between a user and an agent.
type Message struct {
	Kind             string         `json:"kind"`
	MessageID        string         `json:"messageId"`
	Role             MessageRole    `json:"role"`
	Parts            []Part         `json:"parts"`
	ContextID        string         `json:"contextId,omitempty"`
	TaskID           string         `json:"taskId,omitempty"`
	ReferenceTaskIDs []string       `json:"referenceTaskIds,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Extensions       []string       `json:"extensions,omitempty"`
}

// NewMessage creates a new message with the given role and parts.
func NewMessage(role MessageRole, parts ...Part) Message {
	return Message{
		Kind:      KindMessage,
		MessageID: uuid.New().String(),
		Role:      role,
		Parts:     parts,
	}
}

// NewMessageWithContext creates a new message bound to a conversation and
// optionally a task.
func NewMessageWithContext(role MessageRole, contextID, taskID string, parts ...Part) Message {
	m := NewMessage(role, parts...)
	m.ContextID = contextID
	m.TaskID = taskID
	return m
}

// IsAgent reports whether the message was authored by the agent. Some
// servers label agent output "assistant" or "model"; those count too.
func (m Message) IsAgent() bool {
	switch strings.ToLower(string(m.Role)) {
	case string(MessageRoleAgent), "assistant", "model":
		return true
	default:
		return false
	}
}

// TextContent returns the concatenated text from all TextParts in the message.
func (m Message) TextContent() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if tp, ok := p.(TextPart); ok {
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}

// UnmarshalJSON decodes a message, resolving each part to its concrete type.
func (m *Message) UnmarshalJSON(data []byte) error {
	type messageAlias Message
	var tmp struct {
		messageAlias
		Parts []json.RawMessage `json:"parts"`
	}

	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	*m = Message(tmp.messageAlias)
	m.Parts = make([]Part, 0, len(tmp.Parts))

	for i, raw := range tmp.Parts {
		part, err := UnmarshalPart(raw)
		if err != nil {
			return fmt.Errorf("part %d: %w", i, err)
		}
		m.Parts = append(m.Parts, part)
	}

	return nil
}

// Part represents a segment of a message (text, file, or data).
type Part interface {
	partMarker()
	GetKind() string
}

// TextPart represents a text segment within a message.
type TextPart struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (TextPart) partMarker()       {}
func (p TextPart) GetKind() string { return p.Kind }

// NewTextPart creates a new TextPart with the given text.
func NewTextPart(text string) TextPart {
	return TextPart{Kind: "text", Text: text}
}

// FilePart represents a file included in a message.
type FilePart struct {
	Kind     string         `json:"kind"`
	File     FileContent    `json:"file"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (FilePart) partMarker()       {}
func (p FilePart) GetKind() string { return p.Kind }

// FileContent represents file content, either inline bytes or a URI reference.
type FileContent struct {
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Bytes    string `json:"bytes,omitempty"` // Base64 encoded
	URI      string `json:"uri,omitempty"`
}

// NewFilePartWithBytes creates a FilePart with inline base64-encoded content.
func NewFilePartWithBytes(name, mimeType, bytes string) FilePart {
	return FilePart{
		Kind: "file",
		File: FileContent{Name: name, MimeType: mimeType, Bytes: bytes},
	}
}

// DataPart represents structured JSON data within a message. Data holds the
// raw object so consumers can decode it into their own types.
type DataPart struct {
	Kind     string          `json:"kind"`
	Data     json.RawMessage `json:"data"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

func (DataPart) partMarker()       {}
func (p DataPart) GetKind() string { return p.Kind }

// NewDataPart creates a DataPart holding the JSON encoding of v.
func NewDataPart(v any) (DataPart, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return DataPart{}, fmt.Errorf("failed to marshal data part: %w", err)
	}
	return DataPart{Kind: "data", Data: data}, nil
}

// Keys returns the top-level keys of the data object, or nil when the data
// is not an object.
func (p DataPart) Keys() []string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(p.Data, &obj); err != nil {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	return keys
}

// Field returns the raw value of a top-level key of the data object.
func (p DataPart) Field(key string) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(p.Data, &obj); err != nil {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// TaskStatus represents the current status of a task.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

// NewTaskStatus creates a new TaskStatus with the given state.
func NewTaskStatus(state TaskState) TaskStatus {
	return TaskStatus{
		State:     state,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewTaskStatusWithMessage creates a new TaskStatus with a message.
func NewTaskStatusWithMessage(state TaskState, msg *Message) TaskStatus {
	s := NewTaskStatus(state)
	s.Message = msg
	return s
}

// Task represents a unit of work being processed by the agent.
type Task struct {
	Kind      string         `json:"kind"`
	ID        string         `json:"id"`
	ContextID string         `json:"contextId"`
	Status    TaskStatus     `json:"status"`
	Artifacts []Artifact     `json:"artifacts,omitempty"`
	History   []Message      `json:"history,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewTask creates a new task with the given ID and context ID.
func NewTask(id, contextID string) *Task {
	return &Task{
		Kind:      KindTask,
		ID:        id,
		ContextID: contextID,
		Status:    NewTaskStatus(TaskStateSubmitted),
	}
}

// Artifact represents an output generated by a task.
type Artifact struct {
	ArtifactID  string         `json:"artifactId"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Parts       []Part         `json:"parts"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes an artifact, resolving each part to its concrete type.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	type artifactAlias Artifact
	var tmp struct {
		artifactAlias
		Parts []json.RawMessage `json:"parts"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	*a = Artifact(tmp.artifactAlias)
	a.Parts = make([]Part, 0, len(tmp.Parts))
	for i, raw := range tmp.Parts {
		part, err := UnmarshalPart(raw)
		if err != nil {
			return fmt.Errorf("artifact part %d: %w", i, err)
		}
		a.Parts = append(a.Parts, part)
	}
	return nil
}

// TaskStatusUpdateEvent represents a streaming task status update.
type TaskStatusUpdateEvent struct {
	Kind      string     `json:"kind"`
	TaskID    string     `json:"taskId"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	Final     bool       `json:"final"`
}

// NewTaskStatusUpdateEvent creates a new task status update event.
func NewTaskStatusUpdateEvent(taskID, contextID string, status TaskStatus, final bool) TaskStatusUpdateEvent {
	return TaskStatusUpdateEvent{
		Kind:      KindStatusUpdate,
		TaskID:    taskID,
		ContextID: contextID,
		Status:    status,
		Final:     final,
	}
}

// TaskArtifactUpdateEvent represents a streaming artifact update.
type TaskArtifactUpdateEvent struct {
	Kind      string   `json:"kind"`
	TaskID    string   `json:"taskId"`
	ContextID string   `json:"contextId"`
	Artifact  Artifact `json:"artifact"`
}

// UnmarshalPart unmarshals a Part from JSON.
//
// Parts without a "kind" come from older clients and agents that send the
// payload key directly ({"text": ...}, {"inlineData": ...}, {"a2ui": ...}).
// Those are inferred: a "text" string becomes a TextPart, a "file" object a
// FilePart, and anything else a DataPart whose data is the whole object.
func UnmarshalPart(data []byte) (Part, error) {
	var raw struct {
		Kind string          `json:"kind"`
		Text *string         `json:"text"`
		File json.RawMessage `json:"file"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	kind := raw.Kind
	if kind == "" {
		switch {
		case raw.Text != nil:
			kind = "text"
		case raw.File != nil:
			kind = "file"
		case raw.Data != nil:
			kind = "data"
		default:
			return DataPart{Kind: "data", Data: json.RawMessage(data)}, nil
		}
	}

	switch kind {
	case "text":
		var p TextPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		p.Kind = kind
		return p, nil
	case "file":
		var p FilePart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		p.Kind = kind
		return p, nil
	default:
		// Unknown part kinds are kept as data so nothing is silently lost.
		var p DataPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.Data == nil {
			p.Data = json.RawMessage(data)
		}
		p.Kind = "data"
		return p, nil
	}
}
