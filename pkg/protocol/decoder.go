package protocol

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// ErrVarintOverflow is returned for a varint that does not fit in 64 bits.
var ErrVarintOverflow = errors.New("protocol: varint overflow")

// Decoder reads typed fields from a single frame payload. The framing
// layer caps payloads at MaxPayloadSize before a decoder ever sees them,
// so every length and count prefix is validated against the bytes that
// actually remain; a hostile prefix fails with io.ErrUnexpectedEOF and
// never drives an allocation.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a decoder over the given payload.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// EOF reports whether the whole payload has been consumed.
func (d *Decoder) EOF() bool {
	return d.pos >= len(d.buf)
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadUvarint reads an unsigned varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf[d.pos:])
	if n == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	if n < 0 {
		return 0, ErrVarintOverflow
	}
	d.pos += n
	return v, nil
}

// ReadString reads a varint length prefix and that many bytes of UTF-8.
func (d *Decoder) ReadString() (string, error) {
	length, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if length > uint64(d.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	n := int(length)
	s := string(d.buf[d.pos : d.pos+n])
	d.pos += n
	return s, nil
}

// ReadBool reads a one-byte boolean. Any nonzero byte reads as true.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadUint16 reads a big-endian uint16.
func (d *Decoder) ReadUint16() (uint16, error) {
	if d.pos+2 > len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint16(d.buf[d.pos:])
	d.pos += 2
	return v, nil
}

// ReadUint64 reads a big-endian uint64.
func (d *Decoder) ReadUint64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

// ReadFloat64 reads a float64 from its big-endian IEEE 754 bits.
func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadCount reads a varint element count for ops and event-data entries.
// Every element occupies at least one byte, so any count beyond the
// remaining payload is malformed.
func (d *Decoder) ReadCount() (int, error) {
	count, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if count > uint64(d.Remaining()) {
		return 0, io.ErrUnexpectedEOF
	}
	return int(count), nil
}
