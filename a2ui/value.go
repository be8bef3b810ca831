package a2ui

// BoundValue is an A2UI property value: a data model binding, a literal, or
// both. When both are present the binding wins once it resolves.
type BoundValue struct {
	Path           string   `json:"path,omitempty"`
	LiteralString  *string  `json:"literalString,omitempty"`
	LiteralNumber  *float64 `json:"literalNumber,omitempty"`
	LiteralBoolean *bool    `json:"literalBoolean,omitempty"`
}

// Path returns a value bound to a data model path.
func Path(p string) BoundValue {
	return BoundValue{Path: p}
}

// String returns a literal string value.
func String(s string) BoundValue {
	return BoundValue{LiteralString: &s}
}

// Number returns a literal number value.
func Number(n float64) BoundValue {
	return BoundValue{LiteralNumber: &n}
}

// Bool returns a literal boolean value.
func Bool(b bool) BoundValue {
	return BoundValue{LiteralBoolean: &b}
}

// IsZero reports whether the value carries neither a binding nor a literal.
func (b BoundValue) IsZero() bool {
	return b.Path == "" && b.Literal() == nil
}

// IsBound reports whether the value carries a data model binding.
func (b BoundValue) IsBound() bool {
	return b.Path != ""
}

// Literal returns the literal part of the value, or nil.
func (b BoundValue) Literal() any {
	switch {
	case b.LiteralString != nil:
		return *b.LiteralString
	case b.LiteralNumber != nil:
		return *b.LiteralNumber
	case b.LiteralBoolean != nil:
		return *b.LiteralBoolean
	default:
		return nil
	}
}

// Resolve returns the bound data model value when the path resolves, else
// the literal, else nil.
func (b BoundValue) Resolve(dm DataModel) any {
	if b.Path != "" {
		if v, ok := dm.Lookup(b.Path); ok && v != nil {
			return v
		}
	}
	return b.Literal()
}

// Text resolves the value as display text.
func (b BoundValue) Text(dm DataModel) string {
	s, _ := AsString(b.Resolve(dm))
	return s
}
