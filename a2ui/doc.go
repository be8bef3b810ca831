// Package a2ui reconstructs A2UI v0.8 surfaces from protocol messages.
//
// An agent describes UI as a stream of three message kinds per surface:
// beginRendering names the surface and its root component, surfaceUpdate
// replaces its component tree, and dataModelUpdate merges values into its
// data model. Components bind their properties to the data model with
// paths ("/size") or carry literals ({"literalNumber": 5}).
//
// [ParseMessage] decodes a message into the closed set [BeginRendering],
// [SurfaceUpdate], [DataModelUpdate] or [UnknownMessage]. A [Processor]
// applies batches of messages, in order, to its [Registry] of surfaces.
// [DecodeEnvelope] splits an agent reply into presentable text and images,
// protocol messages and legacy widget descriptors.
//
// A Processor and its Registry are owned by one conversation and are not
// safe for concurrent use.
package a2ui
