package genui

// ImageOptions contains configuration for an image generation request.
type ImageOptions struct {
	Model  string
	Size   ImageSize
	Count  int
	Format ImageFormat
	// References are images the provider should condition on, such as the
	// previous generation or a user sketch. Providers that cannot accept
	// reference images ignore them.
	References []Image
	// Hue in degrees (0-360) hints the dominant color for providers that
	// render locally. Negative means unset.
	Hue float64
}

// ImageOption is a functional option for configuring image generation requests.
type ImageOption func(*ImageOptions)

// WithImageModel sets the model to use for image generation.
func WithImageModel(model string) ImageOption {
	return func(o *ImageOptions) {
		o.Model = model
	}
}

// WithImageSize sets the dimensions for generated images.
func WithImageSize(size ImageSize) ImageOption {
	return func(o *ImageOptions) {
		o.Size = size
	}
}

// WithImageCount sets the number of images to generate.
// Note: DALL-E 3 only supports n=1; Google Imagen supports up to 4.
func WithImageCount(n int) ImageOption {
	return func(o *ImageOptions) {
		o.Count = n
	}
}

// WithImageFormat sets the output format for generated images.
func WithImageFormat(f ImageFormat) ImageOption {
	return func(o *ImageOptions) {
		o.Format = f
	}
}

// WithReferenceImage appends an image the generation should be based on.
// Empty images are ignored.
func WithReferenceImage(img Image) ImageOption {
	return func(o *ImageOptions) {
		if !img.Empty() {
			o.References = append(o.References, img)
		}
	}
}

// WithHue sets the dominant hue hint in degrees.
func WithHue(degrees float64) ImageOption {
	return func(o *ImageOptions) {
		o.Hue = degrees
	}
}

// ApplyImageOptions applies functional options to an ImageOptions struct.
func ApplyImageOptions(opts ...ImageOption) *ImageOptions {
	o := &ImageOptions{Hue: -1}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
