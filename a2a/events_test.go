package a2a

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind string
	}{
		{"message", `{"kind":"message","role":"agent","parts":[]}`, KindMessage},
		{"task", `{"kind":"task","id":"t","contextId":"c","status":{"state":"working"}}`, KindTask},
		{"status update", `{"kind":"status-update","taskId":"t","status":{"state":"working"},"final":false}`, KindStatusUpdate},
		{"artifact update", `{"kind":"artifact-update","taskId":"t","artifact":{"artifactId":"a","parts":[]}}`, KindArtifactUpdate},
		{"message without kind", `{"role":"agent","parts":[{"text":"hi"}]}`, KindMessage},
		{"status update without kind", `{"taskId":"t","status":{"state":"working"},"final":true}`, KindStatusUpdate},
		{"task without kind", `{"id":"t","history":[]}`, KindTask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := DecodeEvent(json.RawMessage(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, ev.EventKind())
		})
	}

	t.Run("unrecognized shape", func(t *testing.T) {
		_, err := DecodeEvent(json.RawMessage(`{"foo":1}`))
		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := DecodeEvent(json.RawMessage(`{"kind":"mystery"}`))
		assert.Error(t, err)
	})
}

func TestAgentMessage(t *testing.T) {
	agent := NewMessage(MessageRoleAgent, NewTextPart("agent reply"))
	older := NewMessage(MessageRoleAgent, NewTextPart("older reply"))
	user := NewMessage(MessageRoleUser, NewTextPart("question"))

	t.Run("direct agent message", func(t *testing.T) {
		m, ok := AgentMessage(agent)
		require.True(t, ok)
		assert.Equal(t, "agent reply", m.TextContent())
	})

	t.Run("direct user message is ignored", func(t *testing.T) {
		_, ok := AgentMessage(user)
		assert.False(t, ok)
	})

	t.Run("status update wrapping agent message", func(t *testing.T) {
		ev := NewTaskStatusUpdateEvent("t", "c", NewTaskStatusWithMessage(TaskStateInputRequired, &agent), false)
		m, ok := AgentMessage(ev)
		require.True(t, ok)
		assert.Equal(t, "agent reply", m.TextContent())
	})

	t.Run("status update without message", func(t *testing.T) {
		ev := NewTaskStatusUpdateEvent("t", "c", NewTaskStatus(TaskStateWorking), false)
		_, ok := AgentMessage(ev)
		assert.False(t, ok)
	})

	t.Run("task history picks last agent message", func(t *testing.T) {
		task := NewTask("t", "c")
		task.History = []Message{older, user, agent, user}
		m, ok := AgentMessage(task)
		require.True(t, ok)
		assert.Equal(t, "agent reply", m.TextContent())
	})

	t.Run("task status message wins over history", func(t *testing.T) {
		task := NewTask("t", "c")
		task.History = []Message{older}
		task.Status.Message = &agent
		m, ok := AgentMessage(task)
		require.True(t, ok)
		assert.Equal(t, "agent reply", m.TextContent())
	})

	t.Run("latest across events", func(t *testing.T) {
		first := NewTaskStatusUpdateEvent("t", "c", NewTaskStatusWithMessage(TaskStateWorking, &older), false)
		last := NewTaskStatusUpdateEvent("t", "c", NewTaskStatusWithMessage(TaskStateInputRequired, &agent), false)
		m, ok := LatestAgentMessage([]Event{first, user, last, NewTask("t", "c")})
		require.True(t, ok)
		assert.Equal(t, "agent reply", m.TextContent())

		_, ok = LatestAgentMessage([]Event{user})
		assert.False(t, ok)
	})
}
