package genui

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ImageProvider defines the interface for AI image generation providers.
// Generation is opaque to the rest of the module: a prompt plus options in,
// image bytes out.
type ImageProvider interface {
	// GenerateImage creates images from a text prompt.
	GenerateImage(ctx context.Context, prompt string, opts ...ImageOption) (*ImageResponse, error)
}

// ImageResponse represents a complete response from an image generation provider.
type ImageResponse struct {
	Images []GeneratedImage
	// Text carries any commentary the model returned alongside the images.
	Text string
}

// GeneratedImage represents a single generated image.
type GeneratedImage struct {
	Image
	// RevisedPrompt contains the prompt that was actually used, if the
	// provider rewrote it.
	RevisedPrompt string
}

// Image is a decoded binary image with its MIME type.
type Image struct {
	MIMEType string
	Data     []byte
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// Empty reports whether the image carries no bytes.
func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Extension returns the file extension for the image, including the dot.
func (i Image) Extension() string {
	if m := mimetype.Lookup(i.MIMEType); m != nil {
		return m.Extension()
	}
	return mimetype.Detect(i.Data).Extension()
}

// DecodeImage decodes base64 image data. Data URLs ("data:image/png;base64,...")
// are accepted. When the declared MIME type is empty or not an image type,
// the type is sniffed from the decoded bytes.
func DecodeImage(mimeType, data string) (Image, error) {
	if rest, ok := strings.CutPrefix(data, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return Image{}, &ImageError{Op: "decode", MIMEType: mimeType, Err: errors.New("malformed data URL")}
		}
		if mimeType == "" {
			mimeType, _, _ = strings.Cut(header, ";")
		}
		data = payload
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(data)
		if err != nil {
			return Image{}, &ImageError{Op: "decode", MIMEType: mimeType, Err: err}
		}
	}
	return NewImage(mimeType, raw)
}

// NewImage wraps raw image bytes. When mimeType is empty or not an image
// type, the type is sniffed from the bytes.
func NewImage(mimeType string, raw []byte) (Image, error) {
	if len(raw) == 0 {
		return Image{}, &ImageError{Op: "decode", MIMEType: mimeType, Err: ErrEmptyInput}
	}

	if !strings.HasPrefix(mimeType, "image/") {
		detected := mimetype.Detect(raw)
		if !strings.HasPrefix(detected.String(), "image/") {
			return Image{}, &ImageError{Op: "sniff", MIMEType: mimeType, Err: fmt.Errorf("detected %s", detected.String())}
		}
		mimeType = detected.String()
	}

	return Image{MIMEType: mimeType, Data: raw}, nil
}

// ImageFormat specifies the output format for generated images.
type ImageFormat string

const (
	// ImageFormatURL returns images as URLs.
	ImageFormatURL ImageFormat = "url"
	// ImageFormatBase64 returns images as base64-encoded data.
	ImageFormatBase64 ImageFormat = "b64_json"
)

// ImageSize represents predefined image dimensions.
type ImageSize string

const (
	ImageSize256x256   ImageSize = "256x256"
	ImageSize512x512   ImageSize = "512x512"
	ImageSize1024x1024 ImageSize = "1024x1024"
	ImageSize1024x1792 ImageSize = "1024x1792" // Portrait
	ImageSize1792x1024 ImageSize = "1792x1024" // Landscape
)

// SquareSize returns the predefined square size closest to n pixels.
func SquareSize(n int) ImageSize {
	switch {
	case n <= 384:
		return ImageSize256x256
	case n <= 768:
		return ImageSize512x512
	default:
		return ImageSize1024x1024
	}
}
