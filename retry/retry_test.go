package retry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/genui"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transient", genui.NewTransientError("busy", 503, nil), true},
		{"wrapped transient", errors.Join(errors.New("ctx"), genui.NewStatusError("rate limited", 429, nil)), true},
		{"permanent", genui.NewPermanentError("bad key", 401, nil), false},
		{"user input", genui.NewUserInputError("bad prompt", 400, nil), false},
		{"net timeout", timeoutError{}, true},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestDo(t *testing.T) {
	t.Run("success first try", func(t *testing.T) {
		calls := 0
		got, err := Do(context.Background(), fastConfig(3), func(context.Context) (string, error) {
			calls++
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient", func(t *testing.T) {
		calls := 0
		got, err := Do(context.Background(), fastConfig(3), func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, genui.NewTransientError("busy", 503, nil)
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), fastConfig(5), func(context.Context) (int, error) {
			calls++
			return 0, genui.NewPermanentError("nope", 403, nil)
		})
		assert.True(t, genui.IsPermanent(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), fastConfig(2), func(context.Context) (int, error) {
			calls++
			return 0, timeoutError{}
		})
		assert.ErrorIs(t, err, timeoutError{})
		assert.Equal(t, 2, calls)
	})

	t.Run("zero attempts still calls once", func(t *testing.T) {
		calls := 0
		_, _ = Do(context.Background(), Config{}, func(context.Context) (int, error) {
			calls++
			return 0, timeoutError{}
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("context canceled during backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cfg := Config{MaxAttempts: 3, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1}
		_, err := Do(ctx, cfg, func(context.Context) (int, error) {
			cancel()
			return 0, timeoutError{}
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("logs retries", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		calls := 0
		_, err := Do(context.Background(), fastConfig(2), func(context.Context) (int, error) {
			calls++
			if calls == 1 {
				return 0, genui.NewTransientErrorWithRetry("slow down", 429, time.Millisecond, nil)
			}
			return 1, nil
		}, WithLogger(logger), WithOperation("generate image"))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "retrying after transient error")
		assert.Contains(t, buf.String(), "generate image")
	})
}

func TestConfigDelay(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}
	assert.Equal(t, 100*time.Millisecond, cfg.Delay(0))
	assert.Equal(t, 200*time.Millisecond, cfg.Delay(1))
	assert.Equal(t, 400*time.Millisecond, cfg.Delay(2))
	assert.Equal(t, time.Second, cfg.Delay(10))
	assert.Equal(t, 100*time.Millisecond, cfg.Delay(-1))

	jittered := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2, Jitter: 0.5}
	for i := 0; i < 20; i++ {
		d := jittered.Delay(0)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}

	assert.Equal(t, 1, DefaultConfig().WithAttempts(0).MaxAttempts)
	assert.Equal(t, 5, DefaultConfig().WithAttempts(5).MaxAttempts)
	assert.Equal(t, 1, Disabled().MaxAttempts)
}
