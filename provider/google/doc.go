// Package google provides a Google Gemini image client implementing
// [genui.ImageProvider].
//
// Two model families are supported:
//
//   - Gemini image models (default [DefaultImageModel]) through
//     GenerateContent with TEXT and IMAGE response modalities. Reference
//     images such as the previous generation or a user sketch are sent inline.
//   - Imagen models (any model name starting with "imagen") through
//     GenerateImages. Size maps to an aspect ratio and up to four images are
//     returned.
//
// # Basic Usage
//
//	client, err := google.New(ctx, os.Getenv("GOOGLE_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.GenerateImage(ctx, "A serene Japanese garden",
//	    genui.WithReferenceImage(previous),
//	)
//
// API failures are returned as categorized [genui.Error] values so callers
// can retry transient ones.
package google
