package genui

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the PNG signature followed by an IHDR chunk header, enough
// for content sniffing.
var pngHeader = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
}

func TestDecodeImage(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngHeader)

	t.Run("declared mime type is kept", func(t *testing.T) {
		img, err := DecodeImage("image/jpeg", encoded)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", img.MIMEType)
		assert.Equal(t, pngHeader, img.Data)
	})

	t.Run("missing mime type is sniffed", func(t *testing.T) {
		img, err := DecodeImage("", encoded)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MIMEType)
		assert.Equal(t, ".png", img.Extension())
	})

	t.Run("data URL is unwrapped", func(t *testing.T) {
		img, err := DecodeImage("", "data:image/png;base64,"+encoded)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MIMEType)
		assert.Equal(t, encoded, img.Base64())
	})

	t.Run("invalid base64 is a decode error", func(t *testing.T) {
		_, err := DecodeImage("image/png", "!!not base64!!")
		var imgErr *ImageError
		require.ErrorAs(t, err, &imgErr)
		assert.Equal(t, "decode", imgErr.Op)
	})

	t.Run("non-image payload without mime is rejected", func(t *testing.T) {
		_, err := DecodeImage("", base64.StdEncoding.EncodeToString([]byte("hello, plain text")))
		var imgErr *ImageError
		require.ErrorAs(t, err, &imgErr)
		assert.Equal(t, "sniff", imgErr.Op)
	})

	t.Run("empty payload is rejected", func(t *testing.T) {
		_, err := DecodeImage("image/png", "")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}

func TestNewImage(t *testing.T) {
	img, err := NewImage("", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, ".png", img.Extension())

	_, err = NewImage("", nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
