package openai

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spetersoncode/genui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", WithBaseURL(srv.URL+"/"))
}

func TestGenerateImage(t *testing.T) {
	var got map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"created": 1,
			"data": []map[string]any{{
				"b64_json":       base64.StdEncoding.EncodeToString(pngBytes),
				"revised_prompt": "a red fox, watercolor",
			}},
		})
	})

	resp, err := client.GenerateImage(t.Context(), "a red fox",
		genui.WithImageSize(genui.ImageSize512x512),
		genui.WithImageCount(3),
	)
	require.NoError(t, err)
	require.Len(t, resp.Images, 1)
	assert.Equal(t, "image/png", resp.Images[0].MIMEType)
	assert.Equal(t, pngBytes, resp.Images[0].Data)
	assert.Equal(t, "a red fox, watercolor", resp.Images[0].RevisedPrompt)

	assert.Equal(t, "dall-e-3", got["model"])
	assert.Equal(t, "1024x1024", got["size"])
	assert.Equal(t, "b64_json", got["response_format"])
	assert.EqualValues(t, 1, got["n"])
}

func TestGenerateImage_GPTImageOmitsFormat(t *testing.T) {
	var got map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[]}`))
	})
	client.model = "gpt-image-1"

	resp, err := client.GenerateImage(t.Context(), "a fox", genui.WithImageCount(2))
	require.NoError(t, err)
	assert.Empty(t, resp.Images)
	assert.NotContains(t, got, "response_format")
	assert.EqualValues(t, 2, got["n"])
}

func TestGenerateImage_EmptyPrompt(t *testing.T) {
	client := New("k")
	_, err := client.GenerateImage(t.Context(), "  ")
	require.Error(t, err)
	assert.True(t, genui.IsUserInput(err))
}

func TestGenerateImage_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		retryAfter string
		want       genui.ErrorCategory
		wantDelay  time.Duration
	}{
		{"rate limited", http.StatusTooManyRequests, "7", genui.ErrorTransient, 7 * time.Second},
		{"server error", http.StatusInternalServerError, "", genui.ErrorTransient, 0},
		{"bad request", http.StatusBadRequest, "", genui.ErrorUserInput, 0},
		{"unauthorized", http.StatusUnauthorized, "", genui.ErrorPermanent, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error"}}`))
			})

			_, err := client.GenerateImage(t.Context(), "a fox")
			var ce genui.CategorizedError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.want, ce.Category())
			assert.Equal(t, tt.status, ce.StatusCode())
			assert.Equal(t, tt.wantDelay, ce.RetryAfter())
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	assert.Zero(t, parseRetryAfter(nil))

	resp := &http.Response{Header: http.Header{}}
	assert.Zero(t, parseRetryAfter(resp))

	resp.Header.Set("Retry-After", "3")
	assert.Equal(t, 3*time.Second, parseRetryAfter(resp))

	resp.Header.Set("Retry-After", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
	assert.Greater(t, parseRetryAfter(resp), 58*time.Minute)

	resp.Header.Set("Retry-After", "soon")
	assert.Zero(t, parseRetryAfter(resp))
}

func TestSupportedSize(t *testing.T) {
	assert.Equal(t, genui.ImageSize1024x1024, supportedSize("dall-e-3", ""))
	assert.Equal(t, genui.ImageSize1024x1024, supportedSize("dall-e-3", genui.ImageSize256x256))
	assert.Equal(t, genui.ImageSize512x512, supportedSize("dall-e-2", genui.ImageSize512x512))
	assert.Equal(t, genui.ImageSize1792x1024, supportedSize("dall-e-3", genui.ImageSize1792x1024))
}
