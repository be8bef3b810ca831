package google

import (
	"errors"

	"github.com/spetersoncode/genui"
	"google.golang.org/genai"
)

// wrapError wraps a Google GenAI error with genui error categorization.
// genai.APIError does not expose headers, so Retry-After is not available.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		// Not an API error; transport failures are classified by retry heuristics.
		return err
	}

	return genui.NewStatusError("google: image generation failed", apiErr.Code, err)
}
