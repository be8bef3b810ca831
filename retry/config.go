// Package retry retries operations that fail with transient errors, using
// exponential backoff with jitter.
package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Config holds retry configuration parameters.
type Config struct {
	// MaxAttempts is the maximum number of attempts (default: 3).
	// The initial call counts as attempt 1.
	MaxAttempts int

	// InitialDelay is the base delay before the first retry (default: 500ms).
	InitialDelay time.Duration

	// MaxDelay caps the delay between attempts (default: 10s). A server
	// supplied Retry-After is also capped by it.
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier (default: 2.0).
	Multiplier float64

	// Jitter randomizes each delay by up to this fraction (default: 0.1).
	Jitter float64
}

// DefaultConfig returns the configuration the backend uses for image
// provider calls.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// Disabled returns a configuration that makes a single attempt.
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// WithAttempts returns a copy of c with MaxAttempts set. Values below one
// are raised to one.
func (c Config) WithAttempts(n int) Config {
	c.MaxAttempts = max(1, n)
	return c
}

// Delay returns the backoff before retrying after the given 0-indexed
// attempt: min(MaxDelay, InitialDelay * Multiplier^attempt), jittered.
func (c Config) Delay(attempt int) time.Duration {
	attempt = max(0, attempt)
	delay := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}
	if c.Jitter > 0 {
		delay *= 1.0 + (rand.Float64()*2-1)*c.Jitter
	}
	return time.Duration(delay)
}
