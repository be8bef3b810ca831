package a2ui

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"
)

// Message kinds on the wire.
const (
	KeyBeginRendering  = "beginRendering"
	KeySurfaceUpdate   = "surfaceUpdate"
	KeyDataModelUpdate = "dataModelUpdate"
	KeyDeleteSurface   = "deleteSurface"
)

// Message is the closed set of server-to-client protocol messages.
type Message interface {
	// Surface returns the id of the surface the message targets.
	Surface() string
	// Key returns the wire key of the message kind.
	Key() string
}

// BeginRendering announces a surface and the id of its root component.
type BeginRendering struct {
	SurfaceID string         `json:"surfaceId"`
	Root      string         `json:"root"`
	Styles    map[string]any `json:"styles,omitempty"`
}

// SurfaceUpdate replaces a surface's component tree.
type SurfaceUpdate struct {
	SurfaceID  string      `json:"surfaceId"`
	Components []Component `json:"components"`
	// Skipped holds the decode errors of components dropped from the
	// update, such as components without an id.
	Skipped []error `json:"-"`
}

// UnmarshalJSON decodes each component on its own so one bad component
// does not discard its siblings.
func (m *SurfaceUpdate) UnmarshalJSON(data []byte) error {
	var w struct {
		SurfaceID  string            `json:"surfaceId"`
		Components []json.RawMessage `json:"components"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.SurfaceID = w.SurfaceID
	m.Components = nil
	m.Skipped = nil
	if w.Components != nil {
		m.Components = make([]Component, 0, len(w.Components))
	}
	for i, raw := range w.Components {
		var c Component
		if err := json.Unmarshal(raw, &c); err != nil {
			m.Skipped = append(m.Skipped, fmt.Errorf("component %d: %w", i, err))
			continue
		}
		m.Components = append(m.Components, c)
	}
	return nil
}

// DataModelUpdate merges entries into a surface's data model. Path, when
// set to anything but the root, nests the entries under its first segment.
type DataModelUpdate struct {
	SurfaceID string      `json:"surfaceId"`
	Path      string      `json:"path,omitempty"`
	Contents  []DataEntry `json:"contents"`
}

// UnknownMessage is any message kind this package does not act on, such as
// deleteSurface. Surfaces are only destroyed by clearing the registry.
type UnknownMessage struct {
	Name      string
	SurfaceID string
	Raw       json.RawMessage
}

func (m BeginRendering) Surface() string  { return m.SurfaceID }
func (m SurfaceUpdate) Surface() string   { return m.SurfaceID }
func (m DataModelUpdate) Surface() string { return m.SurfaceID }
func (m UnknownMessage) Surface() string  { return m.SurfaceID }

func (BeginRendering) Key() string   { return KeyBeginRendering }
func (SurfaceUpdate) Key() string    { return KeySurfaceUpdate }
func (DataModelUpdate) Key() string  { return KeyDataModelUpdate }
func (m UnknownMessage) Key() string { return m.Name }

var messageDecoders = map[string]func(json.RawMessage) (Message, error){
	KeyBeginRendering:  decodeMessage[BeginRendering],
	KeySurfaceUpdate:   decodeMessage[SurfaceUpdate],
	KeyDataModelUpdate: decodeMessage[DataModelUpdate],
}

func decodeMessage[T Message](raw json.RawMessage) (Message, error) {
	var m T
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// IsMessage reports whether raw is an object carrying one of the protocol
// message keys.
func IsMessage(raw json.RawMessage) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	for key := range obj {
		if _, ok := messageDecoders[key]; ok || key == KeyDeleteSurface {
			return true
		}
	}
	return false
}

// ParseMessage decodes one protocol message. Objects whose key is not a
// known message kind decode to UnknownMessage.
func ParseMessage(raw json.RawMessage) (Message, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse A2UI message: %w", err)
	}
	if len(obj) == 0 {
		return nil, fmt.Errorf("empty A2UI message")
	}

	keys := slices.Collect(maps.Keys(obj))
	sort.Strings(keys)
	for _, key := range keys {
		if decode, ok := messageDecoders[key]; ok {
			m, err := decode(obj[key])
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", key, err)
			}
			return m, nil
		}
	}

	var target struct {
		SurfaceID string `json:"surfaceId"`
	}
	if err := json.Unmarshal(obj[keys[0]], &target); err != nil {
		// Bodies that are not objects carry no surface id.
		target.SurfaceID = ""
	}
	return UnknownMessage{Name: keys[0], SurfaceID: target.SurfaceID, Raw: obj[keys[0]]}, nil
}

// ParseMessages decodes a JSON array of protocol messages.
func ParseMessages(raw json.RawMessage) ([]Message, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse A2UI message list: %w", err)
	}
	msgs := make([]Message, 0, len(items))
	for i, item := range items {
		m, err := ParseMessage(item)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// Encode returns the wire form {"<kind>": {...}} of a message.
func Encode(m Message) (json.RawMessage, error) {
	if u, ok := m.(UnknownMessage); ok {
		return json.Marshal(map[string]json.RawMessage{u.Name: u.Raw})
	}
	return json.Marshal(map[string]Message{m.Key(): m})
}

// DataEntry is one key/value pair of a data model update.
type DataEntry struct {
	Key   string
	Value any
}

// Entry returns a data entry.
func Entry(key string, value any) DataEntry {
	return DataEntry{Key: key, Value: value}
}

type dataEntryWire struct {
	Key          string      `json:"key"`
	ValueString  *string     `json:"valueString,omitempty"`
	ValueInt     *int64      `json:"valueInt,omitempty"`
	ValueNumber  *float64    `json:"valueNumber,omitempty"`
	ValueBoolean *bool       `json:"valueBoolean,omitempty"`
	ValueMap     []DataEntry `json:"valueMap,omitempty"`
}

// UnmarshalJSON decodes the typed value fields. Integers become int,
// numbers float64 and maps map[string]any.
func (e *DataEntry) UnmarshalJSON(data []byte) error {
	var w struct {
		Key          string          `json:"key"`
		ValueString  *string         `json:"valueString"`
		ValueInt     *json.Number    `json:"valueInt"`
		ValueNumber  *float64        `json:"valueNumber"`
		ValueBoolean *bool           `json:"valueBoolean"`
		ValueMap     json.RawMessage `json:"valueMap"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	e.Key = w.Key
	e.Value = nil
	switch {
	case w.ValueString != nil:
		e.Value = *w.ValueString
	case w.ValueInt != nil:
		n, err := w.ValueInt.Int64()
		if err != nil {
			f, ferr := w.ValueInt.Float64()
			if ferr != nil {
				return fmt.Errorf("valueInt for %q: %w", w.Key, err)
			}
			n = int64(math.Round(f))
		}
		e.Value = int(n)
	case w.ValueNumber != nil:
		e.Value = *w.ValueNumber
	case w.ValueBoolean != nil:
		e.Value = *w.ValueBoolean
	case w.ValueMap != nil:
		var entries []DataEntry
		if err := json.Unmarshal(w.ValueMap, &entries); err != nil {
			return fmt.Errorf("valueMap for %q: %w", w.Key, err)
		}
		m := make(map[string]any, len(entries))
		for _, sub := range entries {
			m[sub.Key] = sub.Value
		}
		e.Value = m
	}
	return nil
}

// MarshalJSON encodes the value into the typed field matching its Go type.
// Unsupported types are formatted as strings.
func (e DataEntry) MarshalJSON() ([]byte, error) {
	w := dataEntryWire{Key: e.Key}
	switch v := e.Value.(type) {
	case nil:
	case string:
		w.ValueString = &v
	case bool:
		w.ValueBoolean = &v
	case int:
		n := int64(v)
		w.ValueInt = &n
	case int64:
		w.ValueInt = &v
	case int32:
		n := int64(v)
		w.ValueInt = &n
	case float64:
		w.ValueNumber = &v
	case float32:
		f := float64(v)
		w.ValueNumber = &f
	case map[string]any:
		keys := slices.Collect(maps.Keys(v))
		sort.Strings(keys)
		w.ValueMap = make([]DataEntry, 0, len(keys))
		for _, k := range keys {
			w.ValueMap = append(w.ValueMap, DataEntry{Key: k, Value: v[k]})
		}
	default:
		s := fmt.Sprint(v)
		w.ValueString = &s
	}
	return json.Marshal(w)
}
