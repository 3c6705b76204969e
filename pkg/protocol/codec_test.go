package protocol

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestEncoderDecoderRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteByte(0xAB)
	e.WriteUvarint(300)
	e.WriteString("héllo")
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteUint16(0xBEEF)
	e.WriteUint64(math.MaxUint64 - 1)
	e.WriteFloat64(3.25)

	d := NewDecoder(e.Bytes())

	if b, err := d.ReadByte(); err != nil || b != 0xAB {
		t.Fatalf("ReadByte = %x, %v", b, err)
	}
	if v, err := d.ReadUvarint(); err != nil || v != 300 {
		t.Fatalf("ReadUvarint = %d, %v", v, err)
	}
	if s, err := d.ReadString(); err != nil || s != "héllo" {
		t.Fatalf("ReadString = %q, %v", s, err)
	}
	if v, err := d.ReadBool(); err != nil || !v {
		t.Fatalf("ReadBool(true) = %v, %v", v, err)
	}
	if v, err := d.ReadBool(); err != nil || v {
		t.Fatalf("ReadBool(false) = %v, %v", v, err)
	}
	if v, err := d.ReadUint16(); err != nil || v != 0xBEEF {
		t.Fatalf("ReadUint16 = %x, %v", v, err)
	}
	if v, err := d.ReadUint64(); err != nil || v != math.MaxUint64-1 {
		t.Fatalf("ReadUint64 = %x, %v", v, err)
	}
	if v, err := d.ReadFloat64(); err != nil || v != 3.25 {
		t.Fatalf("ReadFloat64 = %v, %v", v, err)
	}
	if !d.EOF() {
		t.Errorf("decoder not at EOF, %d bytes remaining", d.Remaining())
	}
}

func TestUvarintBoundaryValues(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16383, 16384, 1 << 32, math.MaxUint64}
	for _, v := range values {
		e := NewEncoder()
		e.WriteUvarint(v)
		got, err := NewDecoder(e.Bytes()).ReadUvarint()
		if err != nil || got != v {
			t.Errorf("varint roundtrip for %d: got %d, %v", v, got, err)
		}
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("data")
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len after Reset = %d", e.Len())
	}
}

func TestDecoderIncompleteVarint(t *testing.T) {
	// Continuation bit set but no following byte.
	if _, err := NewDecoder([]byte{0x80}).ReadUvarint(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("incomplete varint err = %v, want ErrUnexpectedEOF", err)
	}
	if _, err := NewDecoder(nil).ReadUvarint(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("empty buffer err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecoderVarintOverflow(t *testing.T) {
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0xFF
	}
	if _, err := NewDecoder(buf).ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("overlong varint err = %v, want ErrVarintOverflow", err)
	}
}

func TestDecoderTruncatedString(t *testing.T) {
	e := NewEncoder()
	e.WriteString("truncate me")
	data := e.Bytes()[:4]

	d := NewDecoder(data)
	if _, err := d.ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("truncated string err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecoderHugeLengthPrefix(t *testing.T) {
	// A length prefix far beyond the buffer must fail cleanly, never
	// allocate.
	e := NewEncoder()
	e.WriteUvarint(1 << 40)
	d := NewDecoder(e.Bytes())
	if _, err := d.ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("huge length err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecoderCountBeyondPayload(t *testing.T) {
	// A count that claims more elements than there are bytes left is
	// malformed regardless of element size.
	e := NewEncoder()
	e.WriteUvarint(1 << 20)
	d := NewDecoder(e.Bytes())
	if _, err := d.ReadCount(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("oversized count err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecoderTruncatedFixedWidth(t *testing.T) {
	if _, err := NewDecoder([]byte{0x01}).ReadUint16(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short uint16 err = %v", err)
	}
	if _, err := NewDecoder(make([]byte, 7)).ReadUint64(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short uint64 err = %v", err)
	}
}
