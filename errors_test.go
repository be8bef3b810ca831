package genui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"empty input", ErrEmptyInput, "empty input"},
		{"no response", ErrNoResponse, "no agent response in stream"},
		{"busy", ErrBusy, "request already in flight"},
		{"closed", ErrClosed, "session closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			wrapped := fmt.Errorf("send: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		code     int
		expected ErrorCategory
	}{
		{429, ErrorTransient},
		{500, ErrorTransient},
		{502, ErrorTransient},
		{503, ErrorTransient},
		{400, ErrorUserInput},
		{404, ErrorUserInput},
		{422, ErrorUserInput},
		{401, ErrorPermanent},
		{403, ErrorPermanent},
		{405, ErrorPermanent},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeStatus(tt.code))
		})
	}
}

func TestCategorizedErrorHelpers(t *testing.T) {
	t.Run("transient error is detected through wrapping", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := fmt.Errorf("stream: %w", NewTransientError("request failed", 0, cause))

		assert.True(t, IsTransient(err))
		assert.False(t, IsPermanent(err))
		assert.False(t, IsUserInput(err))
		assert.Equal(t, 0, StatusCodeOf(err))
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, "stream: request failed: connection refused", err.Error())
	})

	t.Run("status error carries code and category", func(t *testing.T) {
		err := NewStatusError("unexpected status", 503, nil)

		assert.True(t, err.Retryable())
		assert.Equal(t, 503, StatusCodeOf(err))
		assert.Equal(t, "unexpected status", err.Error())
	})

	t.Run("retry delay is exposed", func(t *testing.T) {
		err := NewTransientErrorWithRetry("rate limited", 429, 2*time.Second, nil)
		assert.Equal(t, 2*time.Second, RetryAfterOf(err))
	})

	t.Run("plain errors have no category", func(t *testing.T) {
		err := errors.New("plain")
		assert.False(t, IsTransient(err))
		assert.False(t, IsPermanent(err))
		assert.False(t, IsUserInput(err))
		assert.Equal(t, 0, StatusCodeOf(err))
		assert.Zero(t, RetryAfterOf(err))
	})

	t.Run("permanent and user input constructors", func(t *testing.T) {
		assert.True(t, IsPermanent(NewPermanentError("bad key", 401, nil)))
		assert.True(t, IsUserInput(NewUserInputError("bad request", 400, nil)))
	})
}

func TestImageError(t *testing.T) {
	t.Run("Error returns formatted message", func(t *testing.T) {
		tests := []struct {
			name     string
			op       string
			mime     string
			err      error
			expected string
		}{
			{
				name:     "decode error with mime",
				op:       "decode",
				mime:     "image/png",
				err:      errors.New("illegal base64 data"),
				expected: "image decode error for image/png: illegal base64 data",
			},
			{
				name:     "sniff error without mime",
				op:       "sniff",
				err:      errors.New("not an image"),
				expected: "image sniff error: not an image",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				imgErr := &ImageError{Op: tt.op, MIMEType: tt.mime, Err: tt.err}
				assert.Equal(t, tt.expected, imgErr.Error())
			})
		}
	})

	t.Run("Unwrap returns underlying error", func(t *testing.T) {
		underlying := errors.New("underlying error")
		imgErr := &ImageError{Op: "decode", Err: underlying}

		assert.Equal(t, underlying, imgErr.Unwrap())
		assert.True(t, errors.Is(imgErr, underlying))
	})
}
