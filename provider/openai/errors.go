package openai

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/openai/openai-go"
	"github.com/spetersoncode/genui"
)

// wrapError wraps an OpenAI SDK error with genui error categorization.
// It extracts status codes and Retry-After headers for retry handling.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		// Not an API error; transport failures are classified by retry heuristics.
		return err
	}

	code := apiErr.StatusCode
	msg := "openai: image generation failed"
	if retryAfter := parseRetryAfter(apiErr.Response); retryAfter > 0 && genui.CategorizeStatus(code) == genui.ErrorTransient {
		return genui.NewTransientErrorWithRetry(msg, code, retryAfter, err)
	}
	return genui.NewStatusError(msg, code, err)
}

// parseRetryAfter extracts the Retry-After duration from an HTTP response.
// Returns 0 if the header is not present or cannot be parsed.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// RFC 7231 HTTP-date
	if t, err := http.ParseTime(header); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return 0
}
