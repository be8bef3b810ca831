package a2ui

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataModelLookup(t *testing.T) {
	dm := DataModel{"size": 512, "prompt": "a cat", "empty": nil}

	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{"/size", 512, true},
		{"size", 512, true},
		{"/prompt", "a cat", true},
		{"/size/width", 512, true},
		{"/missing", nil, false},
		{"", nil, false},
		{"/", nil, false},
		{"/empty", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := dm.Lookup(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	var nilModel DataModel
	_, ok := nilModel.Lookup("/size")
	assert.False(t, ok)
}

func TestDataModelSetAndClone(t *testing.T) {
	dm := DataModel{}
	dm.Set("/color", "red")
	dm.Set("", "ignored")
	dm.Set("/opts", map[string]any{"a": 1})
	assert.Equal(t, DataModel{"color": "red", "opts": map[string]any{"a": 1}}, dm)

	clone := dm.Clone()
	clone["color"] = "blue"
	clone["opts"].(map[string]any)["a"] = 2
	assert.Equal(t, "red", dm["color"])
	assert.Equal(t, 1, dm["opts"].(map[string]any)["a"])
}

func TestConversions(t *testing.T) {
	t.Run("AsNumber", func(t *testing.T) {
		tests := []struct {
			in     any
			want   float64
			wantOK bool
		}{
			{5, 5, true},
			{int64(7), 7, true},
			{2.5, 2.5, true},
			{float32(1.5), 1.5, true},
			{json.Number("42"), 42, true},
			{" 12 ", 12, true},
			{"abc", 0, false},
			{true, 0, false},
			{nil, 0, false},
		}
		for _, tt := range tests {
			got, ok := AsNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
			assert.InDelta(t, tt.want, got, 1e-9, "%v", tt.in)
		}
	})

	t.Run("AsString", func(t *testing.T) {
		s, ok := AsString("hi")
		assert.True(t, ok)
		assert.Equal(t, "hi", s)

		s, ok = AsString(512)
		assert.True(t, ok)
		assert.Equal(t, "512", s)

		s, ok = AsString(0.25)
		assert.True(t, ok)
		assert.Equal(t, "0.25", s)

		s, ok = AsString(true)
		assert.True(t, ok)
		assert.Equal(t, "true", s)

		_, ok = AsString(nil)
		assert.False(t, ok)
		_, ok = AsString([]string{"x"})
		assert.False(t, ok)
	})

	t.Run("AsBool", func(t *testing.T) {
		b, ok := AsBool(true)
		assert.True(t, ok)
		assert.True(t, b)

		b, ok = AsBool("false")
		assert.True(t, ok)
		assert.False(t, b)

		b, ok = AsBool(1)
		assert.True(t, ok)
		assert.True(t, b)

		_, ok = AsBool("maybe")
		assert.False(t, ok)
	})
}
