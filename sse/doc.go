// Package sse reads and writes Server-Sent Event streams carrying JSON
// payloads.
//
// The client side is [Parser], which accepts arbitrary byte chunks as they
// arrive from the network and yields one JSON value per completed frame, and
// [Reader], which drives a Parser from an [io.Reader]. A frame is one or more
// "data:" lines terminated by a blank line. Frames whose payload is not valid
// JSON are skipped and logged; the stream continues.
//
// The server side is [Writer], which frames values for an
// [net/http.ResponseWriter] and flushes after every event.
package sse
