package a2a

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMapper(t *testing.T) {
	t.Run("generates ids when empty", func(t *testing.T) {
		m := NewMapper("", "")
		assert.NotEmpty(t, m.TaskID())
		assert.NotEmpty(t, m.ContextID())
		assert.Equal(t, TaskStateSubmitted, m.State())
	})

	t.Run("keeps provided ids", func(t *testing.T) {
		m := NewMapper("task-1", "ctx-1")
		assert.Equal(t, "task-1", m.TaskID())
		assert.Equal(t, "ctx-1", m.ContextID())
	})
}

func TestMapperLifecycle(t *testing.T) {
	m := NewMapper("task-1", "ctx-1")

	request := NewMessage(MessageRoleUser, NewTextPart("draw a cat"))
	task := m.Submitted(request)
	assert.Equal(t, KindTask, task.Kind)
	assert.Equal(t, TaskStateSubmitted, task.Status.State)
	require.Len(t, task.History, 1)

	working := m.Working("Generating your image...")
	assert.Equal(t, TaskStateWorking, m.State())
	assert.False(t, working.Final)
	require.NotNil(t, working.Status.Message)
	assert.Equal(t, "Generating your image...", working.Status.Message.TextContent())
	assert.Equal(t, "task-1", working.Status.Message.TaskID)
	assert.Equal(t, "ctx-1", working.Status.Message.ContextID)

	reply := m.AgentMessage(NewTextPart("here you go"))
	done := m.InputRequired(reply)
	assert.Equal(t, TaskStateInputRequired, done.Status.State)
	assert.False(t, done.Final)

	failed := m.Failed("boom")
	assert.True(t, failed.Final)
	assert.Equal(t, TaskStateFailed, m.State())

	completed := m.Completed(nil)
	assert.True(t, completed.Final)
	assert.Nil(t, completed.Status.Message)
}

func TestCollect(t *testing.T) {
	t.Run("folds a stream into one task", func(t *testing.T) {
		m := NewMapper("task-1", "ctx-1")
		events := make(chan Event, 4)
		events <- m.Submitted(NewMessage(MessageRoleUser, NewTextPart("hi")))
		events <- m.Working("working")
		events <- m.InputRequired(m.AgentMessage(NewTextPart("answer")))
		close(events)

		task := Collect(events)
		require.NotNil(t, task)
		assert.Equal(t, "task-1", task.ID)
		assert.Equal(t, TaskStateInputRequired, task.Status.State)
		require.Len(t, task.History, 3)

		msg, ok := AgentMessage(task)
		require.True(t, ok)
		assert.Equal(t, "answer", msg.TextContent())
	})

	t.Run("status updates without a task event", func(t *testing.T) {
		m := NewMapper("task-2", "ctx-2")
		events := make(chan Event, 1)
		events <- m.Failed("nope")
		close(events)

		task := Collect(events)
		require.NotNil(t, task)
		assert.Equal(t, "task-2", task.ID)
		assert.Equal(t, TaskStateFailed, task.Status.State)
	})

	t.Run("empty stream", func(t *testing.T) {
		events := make(chan Event)
		close(events)
		assert.Nil(t, Collect(events))
	})
}
