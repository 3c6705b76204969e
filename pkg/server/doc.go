// Package server runs live view sessions over websockets.
//
// Each connection mounts its own view tree against a Recorder, a host
// adapter that mirrors the client DOM in memory and records every
// mutation as a wire op. The binding layer keeps the mirror current
// through ordinary signal updates; the session drains the recorded ops
// into sequenced frames for the thin client, which applies them to the
// real DOM.
//
// The page route serves a statically rendered document for first paint.
// Once the socket connects, the first ops frame rebuilds the app
// container from the live tree, which also gives the client its node ref
// map. No op history is kept: a sequence gap or failed resume means the
// client reloads the page.
package server
