package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/session"
)

// replyMsg carries the result of one exchange.
type replyMsg struct {
	prompt string
	reply  *session.Reply
	saved  []string
	err    error
}

// healthMsg carries one liveness check result.
type healthMsg struct {
	err error
}

// clearErrorMsg clears the status bar error.
type clearErrorMsg struct{}

// exchangeCmd runs fn off the UI goroutine and saves any returned images.
func exchangeCmd(prompt string, opts Options, fn func(ctx context.Context) (*session.Reply, error)) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}
		reply, err := fn(ctx)
		if err != nil {
			return replyMsg{prompt: prompt, err: err}
		}
		saved, err := SaveImages(opts.OutDir, reply.Images)
		return replyMsg{prompt: prompt, reply: reply, saved: saved, err: err}
	}
}

// clearErrorCmd returns a command that clears the error after a delay.
func clearErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// SaveImages writes images into dir with timestamped names and returns the
// paths. An empty dir saves nothing.
func SaveImages(dir string, images []genui.Image) ([]string, error) {
	if dir == "" || len(images) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	stamp := time.Now().Format("20060102-150405")
	var paths []string
	for i, img := range images {
		path := filepath.Join(dir, fmt.Sprintf("image-%s-%d%s", stamp, i+1, img.Extension()))
		if err := os.WriteFile(path, img.Data, 0o644); err != nil {
			return paths, fmt.Errorf("save image: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
