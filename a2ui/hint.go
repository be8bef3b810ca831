package a2ui

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label turns a widget id such as "brightness-slider" into "Brightness Slider".
func Label(id string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(id))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// Adjustments renders widget values as the natural-language hint appended to
// a prompt: "\n\nAdjustments: Size: 512; Color Tone (hue=180, lightness=50)".
// Ids of the form "<widget>.<field>" are grouped under their widget, as are
// map values. It returns "" when there is nothing to describe.
func Adjustments(values map[string]any) string {
	groups := make(map[string]map[string]any)
	for id, v := range values {
		if v == nil {
			continue
		}
		widget, field, nested := strings.Cut(id, ".")
		g := groups[widget]
		if g == nil {
			g = make(map[string]any)
			groups[widget] = g
		}
		switch {
		case nested:
			g[field] = v
		default:
			if m, ok := v.(map[string]any); ok {
				maps.Copy(g, m)
			} else {
				g[""] = v
			}
		}
	}

	var parts []string
	for _, widget := range slices.Sorted(maps.Keys(groups)) {
		if s := describe(Label(widget), groups[widget]); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n\nAdjustments: " + strings.Join(parts, "; ")
}

func describe(label string, fields map[string]any) string {
	if len(fields) == 1 {
		for _, v := range fields {
			if v == nil {
				return ""
			}
			return label + ": " + FormatValue(v)
		}
	}

	var kv []string
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if fields[k] == nil {
			continue
		}
		key := k
		if key == "" {
			key = "value"
		}
		kv = append(kv, key+"="+FormatValue(fields[k]))
	}
	if len(kv) == 0 {
		return ""
	}
	return label + " (" + strings.Join(kv, ", ") + ")"
}

// FormatValue formats a widget value for display. Whole numbers print
// without a fraction.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		if s, ok := AsString(v); ok {
			return s
		}
		return ""
	}
}
