package protocol

import (
	"encoding/binary"
	"math"
)

// MaxVarintLen is the worst-case encoded size of a varint field. Op size
// estimates use it to budget ops into frames without encoding twice.
const MaxVarintLen = binary.MaxVarintLen64

// Encoder builds a frame payload by appending to a growable buffer. The
// write surface is exactly the field kinds the wire format uses: bytes,
// varints, length-prefixed strings, booleans, and the fixed-width
// big-endian integers carried by hello, ping and numeric prop values.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an encoder sized for a typical small frame.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Reset empties the encoder, keeping the underlying buffer for reuse.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the encoded payload. The slice aliases the encoder's
// buffer and is valid until the next write or Reset.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes encoded so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// WriteByte appends a single byte. Unlike io.ByteWriter it reports no
// error; appends to the payload buffer cannot fail.
func (e *Encoder) WriteByte(b byte) {
	e.buf = append(e.buf, b)
}

// WriteBytes appends raw bytes with no length prefix.
func (e *Encoder) WriteBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// WriteUvarint appends an unsigned varint.
func (e *Encoder) WriteUvarint(v uint64) {
	e.buf = binary.AppendUvarint(e.buf, v)
}

// WriteString appends a varint length prefix followed by the string bytes.
func (e *Encoder) WriteString(s string) {
	e.buf = binary.AppendUvarint(e.buf, uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// WriteBool appends a boolean as one byte, 0x00 or 0x01.
func (e *Encoder) WriteBool(b bool) {
	if b {
		e.buf = append(e.buf, 0x01)
	} else {
		e.buf = append(e.buf, 0x00)
	}
}

// WriteUint16 appends a big-endian uint16.
func (e *Encoder) WriteUint16(v uint16) {
	e.buf = binary.BigEndian.AppendUint16(e.buf, v)
}

// WriteUint64 appends a big-endian uint64.
func (e *Encoder) WriteUint64(v uint64) {
	e.buf = binary.BigEndian.AppendUint64(e.buf, v)
}

// WriteFloat64 appends a float64 as its IEEE 754 bits, big-endian.
func (e *Encoder) WriteFloat64(v float64) {
	e.buf = binary.BigEndian.AppendUint64(e.buf, math.Float64bits(v))
}
