package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/render"
	"github.com/spetersoncode/genui/session"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-6, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case replyMsg:
		return m.handleReply(msg)

	case healthMsg:
		if msg.err != nil {
			m.health = healthDown
		} else {
			m.health = healthUp
		}
		return m, nil

	case clearErrorMsg:
		m.err = nil
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.toggleFocus(), nil
	}

	if m.focus == FocusWidgets {
		return m.handleWidgetKey(msg)
	}

	switch msg.String() {
	case "esc":
		if m.editing != "" {
			m.stopEditing()
			return m, nil
		}
		return m, tea.Quit
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if m.editing != "" {
			return m.commitEdit(value)
		}
		if value == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m.send(value, func(ctx context.Context) (*session.Reply, error) {
			return m.session.Send(ctx, value)
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleWidgetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ids := m.session.Interactive()
	if len(ids) == 0 {
		return m.toggleFocus(), nil
	}
	m.selected = min(m.selected, len(ids)-1)
	id := ids[m.selected]

	switch msg.String() {
	case "esc":
		return m.toggleFocus(), nil
	case "up", "k":
		m.selected = (m.selected - 1 + len(ids)) % len(ids)
	case "down", "j":
		m.selected = (m.selected + 1) % len(ids)
	case "left", "h":
		return m, m.adjust(id, -1)
	case "right", "l":
		return m, m.adjust(id, 1)
	case "r":
		return m.refine()
	case "enter", " ":
		w, _ := m.session.Widget(id)
		switch w.Kind {
		case render.KindButton:
			return m.refine()
		case render.KindSwitch, render.KindSelect:
			return m, m.adjust(id, 1)
		case render.KindTextField, render.KindColor, render.KindSketch:
			return m.startEditing(w), nil
		}
	}
	return m, nil
}

func (m *Model) adjust(id string, step int) tea.Cmd {
	if err := m.session.Adjust(id, step); err != nil {
		return m.setError(err)
	}
	return nil
}

func (m Model) refine() (tea.Model, tea.Cmd) {
	prompt := m.session.LastPrompt()
	if prompt == "" {
		return m, nil
	}
	return m.send(prompt, m.session.Refine)
}

func (m Model) send(prompt string, fn func(ctx context.Context) (*session.Reply, error)) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, m.setError(genui.ErrBusy)
	}
	m.busy = true
	m.transcript = append(m.transcript, entry{role: "you", text: prompt})
	return m, tea.Batch(m.spinner.Tick, exchangeCmd(prompt, m.opts, fn))
}

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.reply == nil {
		m.transcript = append(m.transcript, entry{role: "error", text: msg.err.Error()})
		return m, m.setError(msg.err)
	}

	text := msg.reply.Text
	for i, img := range msg.reply.Images {
		note := fmt.Sprintf("[image %d: %s, %s]", i+1, img.MIMEType, humanize.Bytes(uint64(len(img.Data))))
		if i < len(msg.saved) {
			note += " saved to " + msg.saved[i]
		}
		text = strings.TrimSpace(text + "\n" + note)
	}
	m.transcript = append(m.transcript, entry{role: "agent", text: text})
	m.saved = append(m.saved, msg.saved...)
	m.selected = 0

	if msg.err != nil {
		return m, m.setError(msg.err)
	}
	return m, nil
}

func (m Model) toggleFocus() Model {
	if m.focus == FocusInput && len(m.session.Interactive()) > 0 {
		m.focus = FocusWidgets
		m.input.Blur()
		return m
	}
	m.focus = FocusInput
	m.input.Focus()
	return m
}

// startEditing moves to the input line to type a value for w.
func (m Model) startEditing(w render.Widget) Model {
	m.editing = w.ID
	m.focus = FocusInput
	m.input.Focus()
	m.input.SetValue("")
	label := w.Label
	if label == "" {
		label = w.ID
	}
	switch w.Kind {
	case render.KindSketch:
		m.input.Placeholder = "Path to a sketch image for " + label
	case render.KindColor:
		m.input.Placeholder = "Hex color for " + label
	default:
		if v, ok := m.session.Value(w.ID); ok {
			m.input.SetValue(fmt.Sprint(v))
		}
		m.input.Placeholder = "Value for " + label
	}
	return m
}

func (m *Model) stopEditing() {
	m.editing = ""
	m.input.SetValue("")
	m.input.Placeholder = defaultPlaceholder
}

func (m Model) commitEdit(value string) (tea.Model, tea.Cmd) {
	id := m.editing
	w, _ := m.session.Widget(id)
	m.stopEditing()
	m.focus = FocusWidgets
	m.input.Blur()

	var input any = value
	if w.Kind == render.KindSketch && value != "" {
		data, err := os.ReadFile(value)
		if err != nil {
			return m, m.setError(err)
		}
		img, err := genui.NewImage("", data)
		if err != nil {
			return m, m.setError(err)
		}
		input = img
	}
	if err := m.session.Input(id, input); err != nil {
		return m, m.setError(err)
	}
	return m, nil
}

// setError sets an error to display and returns a command to clear it after a timeout.
func (m *Model) setError(err error) tea.Cmd {
	m.err = err
	return clearErrorCmd()
}
