package a2ui

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind names a component type in the catalog.
type Kind string

const (
	KindText           Kind = "Text"
	KindImage          Kind = "Image"
	KindSlider         Kind = "Slider"
	KindTextField      Kind = "TextField"
	KindMultipleChoice Kind = "MultipleChoice"
	KindCheckBox       Kind = "CheckBox"
	KindColumn         Kind = "Column"
	KindRow            Kind = "Row"
	KindList           Kind = "List"
	KindCard           Kind = "Card"
	KindButton         Kind = "Button"
	KindDivider        Kind = "Divider"
	KindColorPicker    Kind = "ColorPicker"
	KindSketchCanvas   Kind = "SketchCanvas"
)

// Props is the closed set of component property types. Unknown carries any
// kind outside the catalog.
type Props interface {
	Kind() Kind
	props()
}

// Container is implemented by props that reference child components.
type Container interface {
	Props
	ChildIDs() []string
}

// Children lists a container's children, either explicitly or as a
// template repeated over a data binding.
type Children struct {
	ExplicitList []string  `json:"explicitList,omitempty"`
	Template     *Template `json:"template,omitempty"`
}

// Template describes children generated from a bound list.
type Template struct {
	ComponentID string `json:"componentId"`
	DataBinding string `json:"dataBinding"`
}

// IDs returns the referenced child component ids.
func (c Children) IDs() []string {
	if len(c.ExplicitList) > 0 {
		return c.ExplicitList
	}
	if c.Template != nil && c.Template.ComponentID != "" {
		return []string{c.Template.ComponentID}
	}
	return nil
}

// Text displays a string.
type Text struct {
	Text      BoundValue `json:"text"`
	UsageHint string     `json:"usageHint,omitempty"`
}

// Image displays an image. URL is the v0.8 catalog form; Sources is the
// multi-source form some agents emit.
type Image struct {
	URL       BoundValue    `json:"url,omitzero"`
	Sources   []ImageSource `json:"sources,omitempty"`
	Fit       string        `json:"fit,omitempty"`
	UsageHint string        `json:"usageHint,omitempty"`
}

// ImageSource is one candidate image location.
type ImageSource struct {
	URI      BoundValue `json:"uri"`
	MimeType string     `json:"mimeType,omitempty"`
}

// Source returns the value the image should display and its declared MIME
// type, preferring URL over the first source.
func (i Image) Source() (BoundValue, string) {
	if !i.URL.IsZero() {
		return i.URL, ""
	}
	for _, s := range i.Sources {
		if !s.URI.IsZero() {
			return s.URI, s.MimeType
		}
	}
	return BoundValue{}, ""
}

// Slider selects a number in a range.
type Slider struct {
	Label    BoundValue `json:"label,omitzero"`
	Value    BoundValue `json:"value"`
	MinValue BoundValue `json:"minValue,omitzero"`
	MaxValue BoundValue `json:"maxValue,omitzero"`
}

// TextField edits a string.
type TextField struct {
	Label            BoundValue `json:"label,omitzero"`
	Text             BoundValue `json:"text,omitzero"`
	TextFieldType    string     `json:"textFieldType,omitempty"`
	ValidationRegexp string     `json:"validationRegexp,omitempty"`
}

// MultipleChoice picks among options. With MaxAllowedSelections unset or 1
// it behaves as a single select.
type MultipleChoice struct {
	Label                BoundValue     `json:"label,omitzero"`
	Selections           BoundValue     `json:"selections,omitzero"`
	Options              []ChoiceOption `json:"options"`
	MaxAllowedSelections *int           `json:"maxAllowedSelections,omitempty"`
}

// ChoiceOption is one selectable option.
type ChoiceOption struct {
	Label BoundValue `json:"label"`
	Value string     `json:"value"`
}

// CheckBox toggles a boolean.
type CheckBox struct {
	Label BoundValue `json:"label,omitzero"`
	Value BoundValue `json:"value"`
}

// Column stacks children vertically.
type Column struct {
	Children     Children `json:"children"`
	Distribution string   `json:"distribution,omitempty"`
	Alignment    string   `json:"alignment,omitempty"`
}

// Row lays children out horizontally.
type Row struct {
	Children     Children `json:"children"`
	Distribution string   `json:"distribution,omitempty"`
	Alignment    string   `json:"alignment,omitempty"`
}

// List repeats children along a direction.
type List struct {
	Children  Children `json:"children"`
	Direction string   `json:"direction,omitempty"`
	Alignment string   `json:"alignment,omitempty"`
}

// Card frames a single child.
type Card struct {
	Child string `json:"child"`
}

// Button triggers a named action.
type Button struct {
	Child   string `json:"child"`
	Primary bool   `json:"primary,omitempty"`
	Action  Action `json:"action"`
}

// Action is the user action a button sends.
type Action struct {
	Name    string         `json:"name"`
	Context []ContextEntry `json:"context,omitempty"`
}

// ContextEntry is one key of an action's context.
type ContextEntry struct {
	Key   string     `json:"key"`
	Value BoundValue `json:"value"`
}

// Divider separates content.
type Divider struct {
	Axis string `json:"axis,omitempty"`
}

// ColorPicker selects a color as a hex string.
type ColorPicker struct {
	Label BoundValue `json:"label,omitzero"`
	Value BoundValue `json:"value"`
}

// SketchCanvas captures a freehand drawing as an image.
type SketchCanvas struct {
	Label  BoundValue `json:"label,omitzero"`
	Value  BoundValue `json:"value,omitzero"`
	Width  int        `json:"width,omitempty"`
	Height int        `json:"height,omitempty"`
}

// Unknown is a component kind outside the catalog, or a known kind whose
// properties could not be decoded (Err is set).
type Unknown struct {
	Name string
	Raw  json.RawMessage
	Err  error
}

func (Text) Kind() Kind           { return KindText }
func (Image) Kind() Kind          { return KindImage }
func (Slider) Kind() Kind         { return KindSlider }
func (TextField) Kind() Kind      { return KindTextField }
func (MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (CheckBox) Kind() Kind       { return KindCheckBox }
func (Column) Kind() Kind         { return KindColumn }
func (Row) Kind() Kind            { return KindRow }
func (List) Kind() Kind           { return KindList }
func (Card) Kind() Kind           { return KindCard }
func (Button) Kind() Kind         { return KindButton }
func (Divider) Kind() Kind        { return KindDivider }
func (ColorPicker) Kind() Kind    { return KindColorPicker }
func (SketchCanvas) Kind() Kind   { return KindSketchCanvas }
func (u Unknown) Kind() Kind      { return Kind(u.Name) }

func (Text) props()           {}
func (Image) props()          {}
func (Slider) props()         {}
func (TextField) props()      {}
func (MultipleChoice) props() {}
func (CheckBox) props()       {}
func (Column) props()         {}
func (Row) props()            {}
func (List) props()           {}
func (Card) props()           {}
func (Button) props()         {}
func (Divider) props()        {}
func (ColorPicker) props()    {}
func (SketchCanvas) props()   {}
func (Unknown) props()        {}

func (c Column) ChildIDs() []string { return c.Children.IDs() }
func (r Row) ChildIDs() []string    { return r.Children.IDs() }
func (l List) ChildIDs() []string   { return l.Children.IDs() }

func (c Card) ChildIDs() []string {
	if c.Child == "" {
		return nil
	}
	return []string{c.Child}
}

func (b Button) ChildIDs() []string {
	if b.Child == "" {
		return nil
	}
	return []string{b.Child}
}

// decoders maps wire kind names to property decoders. Alias names used by
// other catalogs map onto the same props.
var decoders = map[string]func(json.RawMessage) (Props, error){
	"Text":           decodeProps[Text],
	"Heading":        decodeProps[Text],
	"Image":          decodeProps[Image],
	"Slider":         decodeProps[Slider],
	"TextField":      decodeProps[TextField],
	"MultipleChoice": decodeProps[MultipleChoice],
	"Select":         decodeProps[MultipleChoice],
	"CheckBox":       decodeProps[CheckBox],
	"Switch":         decodeProps[CheckBox],
	"Column":         decodeProps[Column],
	"Row":            decodeProps[Row],
	"List":           decodeProps[List],
	"Card":           decodeProps[Card],
	"Button":         decodeProps[Button],
	"Divider":        decodeProps[Divider],
	"ColorPicker":    decodeProps[ColorPicker],
	"SketchCanvas":   decodeProps[SketchCanvas],
}

func decodeProps[T Props](raw json.RawMessage) (Props, error) {
	var p T
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// Component is one node of a surface's component tree.
type Component struct {
	ID     string
	Weight float64
	Props  Props
}

// Kind returns the component kind.
func (c Component) Kind() Kind {
	if c.Props == nil {
		return ""
	}
	return c.Props.Kind()
}

// ChildIDs returns the ids of the component's children, if it has any.
func (c Component) ChildIDs() []string {
	if ct, ok := c.Props.(Container); ok {
		return ct.ChildIDs()
	}
	return nil
}

type componentWire struct {
	ID        string                     `json:"id"`
	Weight    float64                    `json:"weight,omitempty"`
	Component map[string]json.RawMessage `json:"component"`
}

// UnmarshalJSON decodes the {"id", "component": {"Kind": {...}}} form.
// Kinds outside the catalog and known kinds with malformed properties
// decode to Unknown rather than failing.
func (c *Component) UnmarshalJSON(data []byte) error {
	var w componentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ID == "" {
		return fmt.Errorf("component without id")
	}

	c.ID = w.ID
	c.Weight = w.Weight
	c.Props = Unknown{}

	if len(w.Component) == 0 {
		return nil
	}

	// A well-formed component has exactly one kind key; pick the first
	// known kind deterministically otherwise.
	names := make([]string, 0, len(w.Component))
	for name := range w.Component {
		names = append(names, name)
	}
	sort.Strings(names)

	name := names[0]
	for _, n := range names {
		if _, ok := decoders[n]; ok {
			name = n
			break
		}
	}

	raw := w.Component[name]
	decode, ok := decoders[name]
	if !ok {
		c.Props = Unknown{Name: name, Raw: raw}
		return nil
	}
	props, err := decode(raw)
	if err != nil {
		c.Props = Unknown{Name: name, Raw: raw, Err: err}
		return nil
	}
	c.Props = props
	return nil
}

// MarshalJSON encodes the {"id", "component": {"Kind": {...}}} form.
func (c Component) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	switch p := c.Props.(type) {
	case nil:
		raw = json.RawMessage(`{}`)
	case Unknown:
		raw = p.Raw
		if raw == nil {
			raw = json.RawMessage(`{}`)
		}
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	kind := string(c.Kind())
	if kind == "" {
		kind = "Unknown"
	}
	return json.Marshal(componentWire{
		ID:        c.ID,
		Weight:    c.Weight,
		Component: map[string]json.RawMessage{kind: raw},
	})
}
