package sse

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietParser() *Parser {
	return NewParser(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func payloads(msgs []json.RawMessage) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = string(m)
	}
	return out
}

func TestParserFeed(t *testing.T) {
	tests := []struct {
		name     string
		stream   string
		expected []string
		skipped  int
	}{
		{
			name:     "single frame",
			stream:   "data: {\"a\":1}\n\n",
			expected: []string{`{"a":1}`},
		},
		{
			name:     "two frames in one chunk",
			stream:   "data: {\"a\":1}\n\ndata: {\"b\":2}\n\n",
			expected: []string{`{"a":1}`, `{"b":2}`},
		},
		{
			name:     "no space after colon",
			stream:   "data:{\"a\":1}\n\n",
			expected: []string{`{"a":1}`},
		},
		{
			name:     "crlf line endings",
			stream:   "data: {\"a\":1}\r\n\r\n",
			expected: []string{`{"a":1}`},
		},
		{
			name:     "multi-line data is joined",
			stream:   "data: {\"a\":\ndata: 1}\n\n",
			expected: []string{"{\"a\":\n1}"},
		},
		{
			name:     "comments and other fields are ignored",
			stream:   ": heartbeat\n\nevent: update\nid: 7\ndata: [1,2]\n\n",
			expected: []string{`[1,2]`},
		},
		{
			name:     "malformed frame is skipped",
			stream:   "data: {not json\n\ndata: {\"ok\":true}\n\n",
			expected: []string{`{"ok":true}`},
			skipped:  1,
		},
		{
			name:     "extra blank lines produce nothing",
			stream:   "\n\n\ndata: 3\n\n\n",
			expected: []string{`3`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := quietParser()
			got := payloads(p.Feed([]byte(tt.stream)))
			if len(tt.expected) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.expected, got)
			}
			assert.Equal(t, tt.skipped, p.Skipped())
		})
	}
}

func TestParserSplitPointIndependence(t *testing.T) {
	stream := "data: {\"kind\":\"status-update\",\"final\":false}\n\n" +
		": keep-alive\n\n" +
		"data: {not json}\n\n" +
		"data: {\"kind\":\"message\",\"parts\":[{\"kind\":\"text\",\"text\":\"héllo\"}]}\r\n\r\n"

	whole := quietParser()
	expected := payloads(append(whole.Feed([]byte(stream)), whole.Flush()...))
	require.Len(t, expected, 2)

	for i := 0; i <= len(stream); i++ {
		p := quietParser()
		var got []json.RawMessage
		got = append(got, p.Feed([]byte(stream[:i]))...)
		got = append(got, p.Feed([]byte(stream[i:]))...)
		got = append(got, p.Flush()...)
		assert.Equal(t, expected, payloads(got), "split at %d", i)
		assert.Equal(t, 1, p.Skipped(), "split at %d", i)
	}
}

func TestParserByteAtATime(t *testing.T) {
	stream := "data: {\"a\":1}\n\ndata: {\"b\":2}\n\n"
	p := quietParser()

	var got []json.RawMessage
	for i := 0; i < len(stream); i++ {
		got = append(got, p.Feed([]byte{stream[i]})...)
	}
	assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, payloads(got))
}

func TestParserFlush(t *testing.T) {
	t.Run("dispatches frame without terminating blank line", func(t *testing.T) {
		p := quietParser()
		assert.Empty(t, p.Feed([]byte("data: {\"a\":1}\n")))
		assert.Equal(t, []string{`{"a":1}`}, payloads(p.Flush()))
	})

	t.Run("dispatches unterminated last line", func(t *testing.T) {
		p := quietParser()
		assert.Empty(t, p.Feed([]byte("data: {\"a\":1}")))
		assert.Equal(t, []string{`{"a":1}`}, payloads(p.Flush()))
	})

	t.Run("empty stream flushes nothing", func(t *testing.T) {
		p := quietParser()
		assert.Empty(t, p.Flush())
	})
}

func TestReader(t *testing.T) {
	t.Run("yields frames then EOF", func(t *testing.T) {
		r := NewReader(strings.NewReader("data: 1\n\ndata: 2\n\ndata: {bad}\n\ndata: 3"),
			WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

		var got []string
		for {
			msg, err := r.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			got = append(got, string(msg))
		}

		assert.Equal(t, []string{"1", "2", "3"}, got)
		assert.Equal(t, 1, r.Skipped())

		_, err := r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("propagates read errors", func(t *testing.T) {
		r := NewReader(io.MultiReader(strings.NewReader("data: 1\n\n"), errReader{}))

		msg, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "1", string(msg))

		_, err = r.Next()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
