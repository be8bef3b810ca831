package retry

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/spetersoncode/genui"
)

// Option configures a single Do call.
type Option func(*options)

type options struct {
	logger *slog.Logger
	op     string
}

// WithLogger logs each failed attempt that will be retried.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOperation names the operation in log lines.
func WithOperation(name string) Option {
	return func(o *options) {
		o.op = name
	}
}

// IsTransient reports whether err is worth retrying: categorized transient
// errors and network timeouts. Context cancellation never is.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var ce genui.CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == genui.ErrorTransient
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Do calls fn until it succeeds, returns a non-transient error, the attempts
// run out or ctx is done. A Retry-After carried by the error replaces the
// computed backoff when it is longer.
func Do[T any](ctx context.Context, cfg Config, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	o := options{op: "operation"}
	for _, opt := range opts {
		opt(&o)
	}

	var zero T
	attempts := max(1, cfg.MaxAttempts)
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) || attempt == attempts-1 {
			break
		}

		delay := cfg.Delay(attempt)
		if after := genui.RetryAfterOf(err); after > delay {
			delay = after
			if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
		if o.logger != nil {
			o.logger.Warn("retrying after transient error",
				"operation", o.op,
				"attempt", attempt+1,
				"max_attempts", attempts,
				"delay", delay,
				"error", err,
			)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}
