package render

import (
	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2ui"
)

// Kind is the widget kind a component renders as.
type Kind string

const (
	KindText        Kind = "text"
	KindImage       Kind = "image"
	KindSlider      Kind = "slider"
	KindTextField   Kind = "text-field"
	KindSelect      Kind = "select"
	KindSwitch      Kind = "switch"
	KindColor       Kind = "color"
	KindSketch      Kind = "sketch"
	KindButton      Kind = "button"
	KindDivider     Kind = "divider"
	KindGroup       Kind = "group"
	KindUnsupported Kind = "unsupported"
)

// DefaultColor is the value of a color widget with nothing bound.
const DefaultColor = "#808080"

// Choice is one option of a select widget.
type Choice struct {
	Label string
	Value string
}

// Widget is one rendered element. Only the fields relevant to its kind are
// set.
type Widget struct {
	ID    string
	Kind  Kind
	Label string

	// Text is the content of text widgets, the caption of buttons and the
	// notice of unsupported widgets.
	Text string
	// Hint is the text usage hint (h1, caption, ...).
	Hint string

	// Image is the decoded payload of an image widget. ImageURL is set
	// instead when the source is not inline data.
	Image    *genui.Image
	ImageURL string

	Min, Max, Step float64
	Options        []Choice

	// Action is the action a button sends.
	Action *a2ui.Action

	// Layout is the container kind of a group: column, row, list or card.
	Layout   string
	Children []*Widget

	// Surface is the id of the surface the widget belongs to. Binding is
	// the data model path its value is bound to, if any.
	Surface string
	Binding string

	// Legacy is the legacy widget type for widgets built by FromLegacy.
	Legacy string
}

// Interactive reports whether the widget accepts focus and input.
func (w *Widget) Interactive() bool {
	switch w.Kind {
	case KindSlider, KindTextField, KindSelect, KindSwitch, KindColor, KindSketch, KindButton:
		return true
	default:
		return false
	}
}

// valued reports whether the widget contributes to WidgetValues.
func (w *Widget) valued() bool {
	switch w.Kind {
	case KindSlider, KindTextField, KindSelect, KindSwitch, KindColor:
		return true
	default:
		return false
	}
}

// Walk calls fn for w and every descendant in tree order.
func (w *Widget) Walk(fn func(*Widget)) {
	fn(w)
	for _, c := range w.Children {
		c.Walk(fn)
	}
}

// Panel is the rendered form of one surface.
type Panel struct {
	SurfaceID string
	Widgets   []*Widget
}

// Empty reports whether the panel has no widgets.
func (p Panel) Empty() bool {
	return len(p.Widgets) == 0
}
