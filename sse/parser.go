package sse

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// Option configures a Parser or Reader.
type Option func(*Parser)

// WithLogger sets the logger used to report skipped frames.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser turns a byte stream of SSE frames into JSON payloads.
// It keeps the trailing partial line between calls to Feed, so callers can
// pass chunks split at any byte offset. A Parser is not safe for concurrent use.
type Parser struct {
	buf     []byte   // bytes after the last newline seen
	data    [][]byte // data lines of the frame being assembled
	skipped int
	logger  *slog.Logger
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Feed consumes a chunk and returns the payloads of every frame it completed,
// in stream order. It returns nil when the chunk completed no frame.
func (p *Parser) Feed(chunk []byte) []json.RawMessage {
	p.buf = append(p.buf, chunk...)

	var out []json.RawMessage
	for {
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(p.buf[:i], []byte{'\r'})
		if msg, ok := p.line(line); ok {
			out = append(out, msg)
		}
		p.buf = p.buf[i+1:]
	}

	// Let the backing array go once everything has been consumed.
	if len(p.buf) == 0 {
		p.buf = nil
	}
	return out
}

// Flush ends the stream. A pending partial line is treated as complete and a
// frame missing its terminating blank line is dispatched.
func (p *Parser) Flush() []json.RawMessage {
	var out []json.RawMessage
	if len(p.buf) > 0 {
		line := bytes.TrimSuffix(p.buf, []byte{'\r'})
		p.buf = nil
		if msg, ok := p.line(line); ok {
			out = append(out, msg)
		}
	}
	if msg, ok := p.dispatch(); ok {
		out = append(out, msg)
	}
	return out
}

// Skipped returns how many frames were dropped because their payload was not
// valid JSON.
func (p *Parser) Skipped() int {
	return p.skipped
}

// line processes one complete line and reports a payload when the line
// terminated a frame.
func (p *Parser) line(line []byte) (json.RawMessage, bool) {
	if len(line) == 0 {
		return p.dispatch()
	}
	if line[0] == ':' {
		return nil, false
	}

	field, value, _ := bytes.Cut(line, []byte{':'})
	if len(value) > 0 && value[0] == ' ' {
		value = value[1:]
	}
	if string(field) == "data" {
		p.data = append(p.data, bytes.Clone(value))
	}
	// event, id and retry carry nothing the payload consumers need.
	return nil, false
}

func (p *Parser) dispatch() (json.RawMessage, bool) {
	if len(p.data) == 0 {
		return nil, false
	}
	payload := bytes.Join(p.data, []byte{'\n'})
	p.data = nil

	if !json.Valid(payload) {
		p.skipped++
		p.logger.Warn("skipping malformed SSE frame", "bytes", len(payload))
		return nil, false
	}
	return json.RawMessage(payload), true
}
