package a2a

import (
	"github.com/google/uuid"
)

// Mapper builds the events of a single task.
//
// Create a new Mapper for each task using NewMapper. The Mapper is not
// safe for concurrent use.
type Mapper struct {
	taskID    string
	contextID string
	state     TaskState
}

// NewMapper creates a new Mapper for a single task. Empty ids are generated.
func NewMapper(taskID, contextID string) *Mapper {
	if taskID == "" {
		taskID = uuid.New().String()
	}
	if contextID == "" {
		contextID = uuid.New().String()
	}
	return &Mapper{
		taskID:    taskID,
		contextID: contextID,
		state:     TaskStateSubmitted,
	}
}

// TaskID returns the task ID for this mapper.
func (m *Mapper) TaskID() string {
	return m.taskID
}

// ContextID returns the context ID for this mapper.
func (m *Mapper) ContextID() string {
	return m.contextID
}

// State returns the current task state.
func (m *Mapper) State() TaskState {
	return m.state
}

// AgentMessage creates an agent message bound to this task.
func (m *Mapper) AgentMessage(parts ...Part) Message {
	return NewMessageWithContext(MessageRoleAgent, m.contextID, m.taskID, parts...)
}

// StatusUpdate creates a task status update event.
func (m *Mapper) StatusUpdate(state TaskState, msg *Message, final bool) TaskStatusUpdateEvent {
	m.state = state
	return NewTaskStatusUpdateEvent(
		m.taskID,
		m.contextID,
		NewTaskStatusWithMessage(state, msg),
		final,
	)
}

// Submitted returns the task in its submitted state, the first event of a stream.
func (m *Mapper) Submitted(request Message) *Task {
	m.state = TaskStateSubmitted
	task := m.CreateTask()
	task.History = []Message{request}
	return task
}

// Working returns a status update carrying a progress note.
func (m *Mapper) Working(note string) TaskStatusUpdateEvent {
	msg := m.AgentMessage(NewTextPart(note))
	return m.StatusUpdate(TaskStateWorking, &msg, false)
}

// InputRequired returns a status update that delivers a response and keeps
// the task open for follow-up input.
func (m *Mapper) InputRequired(msg Message) TaskStatusUpdateEvent {
	return m.StatusUpdate(TaskStateInputRequired, &msg, false)
}

// Completed returns a final status update for successful completion.
func (m *Mapper) Completed(msg *Message) TaskStatusUpdateEvent {
	return m.StatusUpdate(TaskStateCompleted, msg, true)
}

// Failed returns a final status update for failure.
func (m *Mapper) Failed(errMsg string) TaskStatusUpdateEvent {
	msg := m.AgentMessage(NewTextPart(errMsg))
	return m.StatusUpdate(TaskStateFailed, &msg, true)
}

// CreateTask creates a Task object from the current mapper state.
func (m *Mapper) CreateTask() *Task {
	task := NewTask(m.taskID, m.contextID)
	task.Status = NewTaskStatus(m.state)
	return task
}

// Collect folds a stream of events into the task they describe. Status
// messages are appended to history as they arrive, so the last agent
// message in history is the most recent response.
func Collect(events <-chan Event) *Task {
	var task *Task
	ensure := func(taskID, contextID string) *Task {
		if task == nil {
			task = NewTask(taskID, contextID)
		}
		return task
	}

	for ev := range events {
		switch e := ev.(type) {
		case *Task:
			history := []Message(nil)
			if task != nil {
				history = task.History
			}
			copied := *e
			copied.History = append(history, e.History...)
			task = &copied
		case TaskStatusUpdateEvent:
			t := ensure(e.TaskID, e.ContextID)
			t.Status = e.Status
			if e.Status.Message != nil {
				t.History = append(t.History, *e.Status.Message)
			}
		case TaskArtifactUpdateEvent:
			t := ensure(e.TaskID, e.ContextID)
			t.Artifacts = append(t.Artifacts, e.Artifact)
		case Message:
			t := ensure(e.TaskID, e.ContextID)
			t.History = append(t.History, e)
		}
	}
	return task
}
