// Package backend implements the image generation agent served over A2A.
//
// An [Agent] turns a user message into an image and a set of widgets the
// user can tune the next generation with. Each request runs through the
// same steps:
//
//   - parse the prompt, the update_widgets user action and any legacy
//     widget parts out of the message ([ParseRequest])
//   - plan the widgets for fresh requests with a [Planner]
//   - enhance the prompt with the current widget values ([EnhancePrompt])
//   - generate the image through a [genui.ImageProvider], retrying
//     transient failures
//   - reply with text, the inline image, and A2UI surface messages
//     ([BuildSurface]) or legacy widget parts
//
// Widget values, the last prompt and the last image are kept per A2A
// context in a [store.Typed] so follow-ups can refine the previous result.
package backend
