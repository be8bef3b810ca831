package sse

import (
	"encoding/json"
	"errors"
	"io"
)

const readChunkSize = 4096

// Reader yields JSON payloads from an SSE stream. One Reader serves one
// response body and cannot be restarted.
type Reader struct {
	r       io.Reader
	parser  *Parser
	pending []json.RawMessage
	chunk   []byte
	err     error
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	return &Reader{
		r:      r,
		parser: NewParser(opts...),
		chunk:  make([]byte, readChunkSize),
	}
}

// Next returns the next payload. It returns io.EOF once the stream has ended
// and every buffered frame has been returned. Any other error comes from the
// underlying reader.
func (r *Reader) Next() (json.RawMessage, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return nil, r.err
		}

		n, err := r.r.Read(r.chunk)
		if n > 0 {
			r.pending = append(r.pending, r.parser.Feed(r.chunk[:n])...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.pending = append(r.pending, r.parser.Flush()...)
				r.err = io.EOF
			} else {
				r.err = err
			}
		}
	}

	msg := r.pending[0]
	r.pending = r.pending[1:]
	return msg, nil
}

// Skipped returns how many malformed frames have been dropped so far.
func (r *Reader) Skipped() int {
	return r.parser.Skipped()
}
