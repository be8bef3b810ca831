package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/spetersoncode/genui/render"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	userStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	agentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// transcriptLines is how many recent conversation entries are shown.
const transcriptLines = 6

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var sections []string
	sections = append(sections, m.header())

	if log := m.transcriptView(width); log != "" {
		sections = append(sections, log)
	}

	focus := ""
	if m.focus == FocusWidgets {
		if ids := m.session.Interactive(); len(ids) > 0 {
			focus = ids[min(m.selected, len(ids)-1)]
		}
	}
	if ui := m.session.View(render.ViewOptions{Width: width - 4, Focus: focus}); ui != "" {
		sections = append(sections, ui)
	}

	if m.busy {
		sections = append(sections, m.spinner.View()+" Waiting for the agent...")
	}
	sections = append(sections, m.input.View())
	if m.err != nil {
		sections = append(sections, errorStyle.Render("Error: "+m.err.Error()))
	}
	sections = append(sections, helpStyle.Render(m.help()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) header() string {
	var status string
	switch m.health {
	case healthUp:
		status = upStyle.Render("● online")
	case healthDown:
		status = downStyle.Render("● offline")
	default:
		status = helpStyle.Render("● connecting")
	}
	return titleStyle.Render("imagine") + "  " + status + "  " + helpStyle.Render(m.session.ContextID())
}

func (m Model) transcriptView(width int) string {
	entries := m.transcript
	if len(entries) > transcriptLines {
		entries = entries[len(entries)-transcriptLines:]
	}
	var lines []string
	for _, e := range entries {
		var role string
		switch e.role {
		case "you":
			role = userStyle.Render("you")
		case "agent":
			role = agentStyle.Render("agent")
		default:
			role = errorStyle.Render(e.role)
		}
		lines = append(lines, role+": "+wordwrap.String(e.text, max(width-8, 20)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) help() string {
	if m.editing != "" {
		return "enter: set value • esc: cancel"
	}
	if m.focus == FocusWidgets {
		return "↑/↓: select • ←/→: adjust • enter: edit/apply • r: regenerate • tab: prompt • ctrl+c: quit"
	}
	return "enter: send • tab: widgets • esc: quit"
}
