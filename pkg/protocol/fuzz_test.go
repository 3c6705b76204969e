package protocol

import "testing"

func FuzzDecodeOps(f *testing.F) {
	f.Add(EncodeOps(&OpsFrame{Seq: 1, Ops: []Op{
		NewCreateElementOp(1, "div"),
		NewSetAttributeOp(1, "id", "x"),
		NewAppendChildOp(0, 1),
	}}))
	f.Add([]byte{})
	f.Add([]byte{0x01, 0x01, 0xEE})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must never panic or over-allocate, only return errors.
		frame, err := DecodeOps(data)
		if err == nil && frame == nil {
			t.Error("nil frame without error")
		}
	})
}

func FuzzDecodeEvent(f *testing.F) {
	f.Add(EncodeEvent(&EventMessage{Target: 1, Type: "click", Data: map[string]string{"a": "b"}}))
	f.Add([]byte{0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		ev, err := DecodeEvent(data)
		if err == nil && ev == nil {
			t.Error("nil event without error")
		}
	})
}

func FuzzDecodeFrame(f *testing.F) {
	f.Add((&Frame{Type: FrameOps, Payload: []byte{1, 2, 3}}).Encode())
	f.Add([]byte{0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		frame, err := DecodeFrame(data)
		if err == nil && frame == nil {
			t.Error("nil frame without error")
		}
	})
}
