package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func TestOpsRoundTrip(t *testing.T) {
	frame := &OpsFrame{
		Seq: 42,
		Ops: []Op{
			NewCreateElementOp(1, "div"),
			NewCreateTextOp(2, "hello"),
			NewSetAttributeOp(1, "id", "main"),
			NewRemoveAttributeOp(1, "title"),
			NewSetPropertyOp(1, "value", StringValue("typed")),
			NewSetPropertyOp(1, "checked", BoolValue(true)),
			NewSetPropertyOp(1, "tabIndex", NumberValue(3)),
			NewSetPropertyOp(1, "custom", NullValue()),
			NewSetStylePropertyOp(1, "color", "red"),
			NewRemoveStylePropertyOp(1, "color"),
			NewSetTextContentOp(1, "text"),
			NewSetInnerMarkupOp(1, "<em>x</em>"),
			NewAddEventListenerOp(1, "click", 7),
			NewRemoveEventListenerOp(1, "click", 7),
			NewAppendChildOp(1, 2),
			NewRemoveChildOp(1, 2),
			NewInsertBeforeOp(1, 2, 3),
			NewInsertBeforeOp(1, 2, 0),
		},
	}

	decoded, err := DecodeOps(EncodeOps(frame))
	if err != nil {
		t.Fatalf("DecodeOps: %v", err)
	}
	if decoded.Seq != frame.Seq {
		t.Errorf("seq = %d, want %d", decoded.Seq, frame.Seq)
	}
	if !reflect.DeepEqual(decoded.Ops, frame.Ops) {
		t.Errorf("ops mismatch:\n got %+v\nwant %+v", decoded.Ops, frame.Ops)
	}
}

func TestDecodeOpsUnknownCode(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1) // seq
	e.WriteUvarint(1) // count
	e.WriteByte(0xEE) // bogus op code
	e.WriteUvarint(5) // target

	if _, err := DecodeOps(e.Bytes()); !errors.Is(err, ErrUnknownOp) {
		t.Errorf("err = %v, want ErrUnknownOp", err)
	}
}

func TestDecodeOpsTruncated(t *testing.T) {
	data := EncodeOps(&OpsFrame{
		Seq: 1,
		Ops: []Op{NewSetAttributeOp(1, "class", "btn")},
	})
	for i := 2; i < len(data); i++ {
		if _, err := DecodeOps(data[:i]); err == nil {
			t.Errorf("truncation at %d bytes decoded without error", i)
		}
	}
}

func TestPropValueOf(t *testing.T) {
	tests := []struct {
		in   any
		want PropValue
	}{
		{nil, NullValue()},
		{"s", StringValue("s")},
		{true, BoolValue(true)},
		{7, NumberValue(7)},
		{int64(8), NumberValue(8)},
		{2.5, NumberValue(2.5)},
		{[]int{1}, StringValue("[1]")},
	}
	for _, tt := range tests {
		if got := PropValueOf(tt.in); got != tt.want {
			t.Errorf("PropValueOf(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPropValueAny(t *testing.T) {
	if v := StringValue("x").Any(); v != "x" {
		t.Errorf("string Any = %v", v)
	}
	if v := BoolValue(true).Any(); v != true {
		t.Errorf("bool Any = %v", v)
	}
	if v := NumberValue(1.5).Any(); v != 1.5 {
		t.Errorf("number Any = %v", v)
	}
	if v := NullValue().Any(); v != nil {
		t.Errorf("null Any = %v", v)
	}
}

func TestOpCodeStrings(t *testing.T) {
	if OpCreateElement.String() != "CreateElement" {
		t.Error("CreateElement string")
	}
	if OpCode(0xEE).String() != "Unknown" {
		t.Error("unknown op string")
	}
}
