// Package openai provides an OpenAI image client implementing
// [genui.ImageProvider].
//
// Images are requested through the generations endpoint and always returned
// as decoded bytes. DALL-E models are asked for b64_json explicitly; gpt-image
// models return base64 by default.
//
// # Basic Usage
//
//	client := openai.New(os.Getenv("OPENAI_API_KEY"), openai.WithModel("gpt-image-1"))
//
//	resp, err := client.GenerateImage(ctx, "A watercolor lighthouse",
//	    genui.WithImageSize(genui.ImageSize1024x1024),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out"+resp.Images[0].Extension(), resp.Images[0].Data, 0o644)
//
// Rate limits carry the server's Retry-After delay in the returned
// [genui.Error].
package openai
