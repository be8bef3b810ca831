package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/spetersoncode/genui/a2ui"
)

var (
	accentColor  = lipgloss.Color("#7C3AED")
	mutedColor   = lipgloss.Color("#6B7280")
	warningColor = lipgloss.Color("#F59E0B")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	headingStyle = lipgloss.NewStyle().Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0A0A0"))

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accentColor).
			Bold(true)

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	unsupportedStyle = lipgloss.NewStyle().
				Foreground(warningColor).
				Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 2)
)

// ViewOptions controls text rendering.
type ViewOptions struct {
	// Width wraps text to this many columns; zero disables wrapping.
	Width int
	// Focus is the id of the widget drawn highlighted.
	Focus string
	// ShowSurfaceIDs prints the surface id above each panel.
	ShowSurfaceIDs bool
}

const barWidth = 20

// View renders panels as terminal text using the renderer's current local
// values. Empty panels are skipped.
func (r *Renderer) View(panels []Panel, opts ViewOptions) string {
	var blocks []string
	for _, p := range panels {
		if p.Empty() {
			continue
		}
		var lines []string
		if opts.ShowSurfaceIDs {
			lines = append(lines, panelTitleStyle.Render(p.SurfaceID))
		}
		for _, w := range p.Widgets {
			lines = append(lines, r.viewWidget(w, opts))
		}
		blocks = append(blocks, panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return strings.Join(blocks, "\n")
}

func (r *Renderer) viewWidget(w *Widget, opts ViewOptions) string {
	line := r.viewLine(w, opts)
	if w.ID == opts.Focus && w.Interactive() {
		return focusStyle.Render("> ") + line
	}
	if w.Interactive() {
		return "  " + line
	}
	return line
}

func (r *Renderer) viewLine(w *Widget, opts ViewOptions) string {
	switch w.Kind {
	case KindText:
		text := wrap(w.Text, opts.Width)
		if strings.HasPrefix(w.Hint, "h") {
			return headingStyle.Render(text)
		}
		return text

	case KindImage:
		switch {
		case w.Image != nil:
			return imageStyle.Render(fmt.Sprintf("[image %s, %s]", w.Image.MIMEType, humanize.Bytes(uint64(len(w.Image.Data)))))
		case w.ImageURL != "":
			return imageStyle.Render("[image " + w.ImageURL + "]")
		default:
			return imageStyle.Render("[image pending]")
		}

	case KindSlider:
		n, _ := a2ui.AsNumber(r.values[w.ID])
		return r.label(w) + sliderBar(n, w.Min, w.Max) + " " + a2ui.FormatValue(n)

	case KindTextField:
		s, _ := r.values[w.ID].(string)
		return r.label(w) + "[" + s + "]"

	case KindSelect:
		s, _ := r.values[w.ID].(string)
		label := s
		if i := w.optionIndex(s); i >= 0 {
			label = w.Options[i].Label
		}
		return r.label(w) + "< " + label + " >"

	case KindSwitch:
		on, _ := r.values[w.ID].(bool)
		box := "[ ]"
		if on {
			box = "[x]"
		}
		return r.label(w) + box

	case KindColor:
		hex, _ := r.values[w.ID].(string)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
		return r.label(w) + swatch + " " + hex

	case KindSketch:
		if img, ok := r.sketches[w.ID]; ok {
			return r.label(w) + imageStyle.Render("[sketch "+humanize.Bytes(uint64(len(img.Data)))+"]")
		}
		return r.label(w) + labelStyle.Render("[no sketch]")

	case KindButton:
		return buttonStyle.Render(w.Text)

	case KindDivider:
		width := opts.Width
		if width <= 0 {
			width = barWidth * 2
		}
		return labelStyle.Render(strings.Repeat("─", width))

	case KindGroup:
		children := make([]string, 0, len(w.Children))
		for _, c := range w.Children {
			children = append(children, r.viewWidget(c, opts))
		}
		var body string
		if w.Layout == "row" {
			body = lipgloss.JoinHorizontal(lipgloss.Top, spaced(children)...)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, children...)
		}
		if w.Label != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, headingStyle.Render(w.Label), body)
		}
		if w.Layout == "card" {
			return cardStyle.Render(body)
		}
		return body

	default:
		return unsupportedStyle.Render(w.Text)
	}
}

func (r *Renderer) label(w *Widget) string {
	label := w.Label
	if label == "" {
		label = a2ui.Label(w.ID)
	}
	return labelStyle.Render(label+": ")
}

func sliderBar(v, lo, hi float64) string {
	filled := 0
	if hi > lo {
		filled = int((v - lo) / (hi - lo) * barWidth)
	}
	filled = max(0, min(barWidth, filled))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func spaced(items []string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, item)
	}
	return out
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
