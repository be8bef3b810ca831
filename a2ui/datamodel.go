package a2ui

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DataModel holds the values a surface's bindings resolve against.
type DataModel map[string]any

// Lookup resolves a binding path. The leading slash is optional and only the
// first path segment selects a value; nested segments are accepted but not
// traversed.
func (d DataModel) Lookup(path string) (any, bool) {
	key := pathKey(path)
	if key == "" || d == nil {
		return nil, false
	}
	v, ok := d[key]
	return v, ok
}

// Resolve returns the value at path, or nil when it is absent.
func (d DataModel) Resolve(path string) any {
	v, _ := d.Lookup(path)
	return v
}

// Set stores a value under the key a path selects.
func (d DataModel) Set(path string, v any) {
	if key := pathKey(path); key != "" {
		d[key] = v
	}
}

// Clone returns a deep copy of the model. Nested maps and lists are copied
// too.
func (d DataModel) Clone() DataModel {
	out := make(DataModel, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func pathKey(path string) string {
	path = strings.TrimPrefix(path, "/")
	key, _, _ := strings.Cut(path, "/")
	return key
}

// AsNumber converts a resolved value to a float64. Numeric strings are
// accepted.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// AsString converts a resolved value to a string. Numbers and booleans are
// formatted; other types are rejected.
func AsString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case nil:
		return "", false
	default:
		if n, ok := AsNumber(v); ok {
			return strconv.FormatFloat(n, 'f', -1, 64), true
		}
		return "", false
	}
}

// AsBool converts a resolved value to a bool. "true"/"false" strings and
// numbers (non-zero is true) are accepted.
func AsBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	default:
		if n, ok := AsNumber(v); ok {
			return n != 0, true
		}
		return false, false
	}
}
