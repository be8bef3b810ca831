// Package genui holds the types shared by the genui packages: images, the
// image provider interface and categorized errors.
//
// The module renders agent-generated UI. An agent reply arrives over A2A
// (JSON-RPC with Server-Sent Events) and carries text, inline images and
// A2UI messages. The packages split that pipeline:
//
//   - [github.com/spetersoncode/genui/sse] parses the event stream.
//   - [github.com/spetersoncode/genui/a2a] is the protocol client, server handler and types.
//   - [github.com/spetersoncode/genui/a2ui] decodes messages into surfaces and their data models.
//   - [github.com/spetersoncode/genui/render] turns surfaces into widgets and terminal text.
//   - [github.com/spetersoncode/genui/session] runs one conversation end to end.
//   - [github.com/spetersoncode/genui/backend] is an image generation agent that speaks the protocol.
//
// # Image Providers
//
// [ImageProvider] generates images from a prompt. Options select the model,
// size, count and reference images:
//
//	resp, err := provider.GenerateImage(ctx, "a lighthouse at dusk",
//	    genui.WithImageSize(genui.ImageSize1024x1024),
//	    genui.WithReferenceImage(sketch),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out"+resp.Images[0].Extension(), resp.Images[0].Data, 0o644)
//
// # Errors
//
// Provider and transport failures are [*Error] values categorized as
// transient, permanent or user input. Use [IsTransient] to decide whether a
// retry can help; the retry package does so automatically.
package genui
