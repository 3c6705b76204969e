// Package protocol defines the binary wire format between a server-side
// host tree and a remote client applying the same mutations.
//
// The server never ships a tree diff: bindings mutate the local host tree
// through a recording adapter, and the recorded operations (see Op) are
// streamed to the client in sequenced OpsFrame batches. The client replays
// each batch against its own tree and acknowledges with Ack. Events travel
// the other way as EventMessage.
//
// Framing is a fixed 4-byte header (type, flags, big-endian payload
// length) followed by the payload. Payloads use varint integers and
// length-prefixed strings. Decoding is defensive: every length and count
// prefix is bounds-checked against the remaining payload, so a malicious
// peer cannot force a large allocation with a small frame.
package protocol
