package protocol

import (
	"encoding/binary"
	"io"
)

// Framing constants. The header is one type byte, one flags byte and a
// big-endian uint16 payload length, which caps any single frame at 64 KiB;
// larger op batches are split across sequenced frames by the sender.
const (
	FrameHeaderSize = 4
	MaxPayloadSize  = 65535
)

// FrameType identifies what a frame's payload carries.
type FrameType uint8

const (
	FrameHello   FrameType = 0x00 // Connection setup
	FrameEvent   FrameType = 0x01 // Client → Server host events
	FrameOps     FrameType = 0x02 // Server → Client mutation ops
	FrameControl FrameType = 0x03 // Ping, resync, close
	FrameAck     FrameType = 0x04 // Applied-sequence acknowledgment
	FrameError   FrameType = 0x05 // Error report
)

// String returns the frame type name.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameEvent:
		return "Event"
	case FrameOps:
		return "Ops"
	case FrameControl:
		return "Control"
	case FrameAck:
		return "Ack"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags modify how a frame is processed.
type FrameFlags uint8

// FlagSequenced marks an ops frame whose payload begins with a sequence
// number; the client uses the sequence to detect gaps in the op stream.
const FlagSequenced FrameFlags = 0x02

// Has reports whether the given flag is set.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

// Frame is one unit on the wire: a header and an opaque payload whose
// format is determined by the frame type. Payloads must not exceed
// MaxPayloadSize; producers split or shrink anything larger before
// building a frame.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// Encode serializes the frame, header included.
func (f *Frame) Encode() []byte {
	buf := make([]byte, FrameHeaderSize, FrameHeaderSize+len(f.Payload))
	buf[0] = byte(f.Type)
	buf[1] = byte(f.Flags)
	binary.BigEndian.PutUint16(buf[2:], uint16(len(f.Payload)))
	return append(buf, f.Payload...)
}

// DecodeFrame parses one frame from data. The payload is copied out, so
// the frame stays valid after the caller reuses its read buffer.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	length := int(binary.BigEndian.Uint16(data[2:]))
	if len(data) < FrameHeaderSize+length {
		return nil, io.ErrUnexpectedEOF
	}

	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:FrameHeaderSize+length])

	return &Frame{
		Type:    FrameType(data[0]),
		Flags:   FrameFlags(data[1]),
		Payload: payload,
	}, nil
}
