package a2ui

import (
	"bytes"
	"slices"
)

func (b BoundValue) clone() BoundValue {
	out := BoundValue{Path: b.Path}
	if b.LiteralString != nil {
		s := *b.LiteralString
		out.LiteralString = &s
	}
	if b.LiteralNumber != nil {
		n := *b.LiteralNumber
		out.LiteralNumber = &n
	}
	if b.LiteralBoolean != nil {
		v := *b.LiteralBoolean
		out.LiteralBoolean = &v
	}
	return out
}

func (c Children) clone() Children {
	out := Children{ExplicitList: slices.Clone(c.ExplicitList)}
	if c.Template != nil {
		t := *c.Template
		out.Template = &t
	}
	return out
}

// cloneProps returns a copy of p sharing no memory with it.
func cloneProps(p Props) Props {
	switch p := p.(type) {
	case Text:
		p.Text = p.Text.clone()
		return p
	case Image:
		p.URL = p.URL.clone()
		if p.Sources != nil {
			sources := make([]ImageSource, len(p.Sources))
			for i, s := range p.Sources {
				sources[i] = ImageSource{URI: s.URI.clone(), MimeType: s.MimeType}
			}
			p.Sources = sources
		}
		return p
	case Slider:
		p.Label = p.Label.clone()
		p.Value = p.Value.clone()
		p.MinValue = p.MinValue.clone()
		p.MaxValue = p.MaxValue.clone()
		return p
	case TextField:
		p.Label = p.Label.clone()
		p.Text = p.Text.clone()
		return p
	case MultipleChoice:
		p.Label = p.Label.clone()
		p.Selections = p.Selections.clone()
		if p.Options != nil {
			options := make([]ChoiceOption, len(p.Options))
			for i, o := range p.Options {
				options[i] = ChoiceOption{Label: o.Label.clone(), Value: o.Value}
			}
			p.Options = options
		}
		if p.MaxAllowedSelections != nil {
			n := *p.MaxAllowedSelections
			p.MaxAllowedSelections = &n
		}
		return p
	case CheckBox:
		p.Label = p.Label.clone()
		p.Value = p.Value.clone()
		return p
	case Column:
		p.Children = p.Children.clone()
		return p
	case Row:
		p.Children = p.Children.clone()
		return p
	case List:
		p.Children = p.Children.clone()
		return p
	case Button:
		if p.Action.Context != nil {
			entries := make([]ContextEntry, len(p.Action.Context))
			for i, e := range p.Action.Context {
				entries[i] = ContextEntry{Key: e.Key, Value: e.Value.clone()}
			}
			p.Action.Context = entries
		}
		return p
	case ColorPicker:
		p.Label = p.Label.clone()
		p.Value = p.Value.clone()
		return p
	case SketchCanvas:
		p.Label = p.Label.clone()
		p.Value = p.Value.clone()
		return p
	case Unknown:
		p.Raw = bytes.Clone(p.Raw)
		return p
	default:
		// Card, Divider and nil hold no references.
		return p
	}
}

func cloneComponents(components []Component) []Component {
	if components == nil {
		return nil
	}
	out := make([]Component, len(components))
	for i, c := range components {
		out[i] = Component{ID: c.ID, Weight: c.Weight, Props: cloneProps(c.Props)}
	}
	return out
}

// cloneValue copies maps and slices of a data model value recursively.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		if v == nil {
			return v
		}
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return slices.Clone(v)
	case []byte:
		return bytes.Clone(v)
	default:
		return v
	}
}
