// Package tui provides the Bubbletea terminal interface for imagine.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spetersoncode/genui/session"
)

// Focus indicates which part of the screen receives keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusWidgets
)

// healthState is the last known agent liveness.
type healthState int

const (
	healthUnknown healthState = iota
	healthUp
	healthDown
)

const defaultPlaceholder = "Describe an image..."

// Options configures the TUI.
type Options struct {
	// OutDir receives generated images; empty keeps them in memory only.
	OutDir string
	// HealthInterval is the liveness check period.
	HealthInterval time.Duration
	// Timeout bounds one exchange.
	Timeout time.Duration
}

// Model is the Bubbletea model of the chat screen.
type Model struct {
	width  int
	height int

	session *session.Session
	opts    Options

	focus    Focus
	selected int
	input    textinput.Model
	spinner  spinner.Model

	// editing is the id of the widget whose value the input line edits.
	editing string

	busy   bool
	health healthState
	err    error

	transcript []entry
	saved      []string
}

// entry is one line of the conversation log.
type entry struct {
	role string
	text string
}

// New creates the chat model for s.
func New(s *session.Session, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = defaultPlaceholder
	ti.CharLimit = 2000
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		session: s,
		opts:    opts,
		input:   ti,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Run starts the TUI and blocks until the user quits. A background monitor
// reports agent liveness to the status bar.
func Run(ctx context.Context, s *session.Session, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(s, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	go s.Monitor(ctx, opts.HealthInterval, func(err error) {
		p.Send(healthMsg{err: err})
	})

	slog.Debug("tui: running program", "context_id", s.ContextID())
	_, err := p.Run()
	slog.Debug("tui: program exited", "error", err)
	return err
}
