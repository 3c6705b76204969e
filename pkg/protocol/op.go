package protocol

import (
	"errors"
	"fmt"
)

// OpCode identifies a host-tree mutation operation. The set mirrors the
// adapter surface one to one: whatever a binding does to a local host tree
// can be replayed against a remote one.
type OpCode uint8

const (
	OpCreateElement       OpCode = 0x01 // target ref, tag name
	OpCreateText          OpCode = 0x02 // target ref, text
	OpSetAttribute        OpCode = 0x03 // target, name, value
	OpRemoveAttribute     OpCode = 0x04 // target, name
	OpSetProperty         OpCode = 0x05 // target, name, tagged value
	OpSetStyleProperty    OpCode = 0x06 // target, property, value
	OpRemoveStyleProperty OpCode = 0x07 // target, property
	OpSetTextContent      OpCode = 0x08 // target, text
	OpSetInnerMarkup      OpCode = 0x09 // target, markup
	OpAddEventListener    OpCode = 0x0A // target, event type, listener handle
	OpRemoveEventListener OpCode = 0x0B // target, event type, listener handle
	OpAppendChild         OpCode = 0x0C // parent, child
	OpRemoveChild         OpCode = 0x0D // parent, child
	OpInsertBefore        OpCode = 0x0E // parent, child, reference (0 = append)
)

// String returns the string representation of the op code.
func (op OpCode) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetAttribute:
		return "SetAttribute"
	case OpRemoveAttribute:
		return "RemoveAttribute"
	case OpSetProperty:
		return "SetProperty"
	case OpSetStyleProperty:
		return "SetStyleProperty"
	case OpRemoveStyleProperty:
		return "RemoveStyleProperty"
	case OpSetTextContent:
		return "SetTextContent"
	case OpSetInnerMarkup:
		return "SetInnerMarkup"
	case OpAddEventListener:
		return "AddEventListener"
	case OpRemoveEventListener:
		return "RemoveEventListener"
	case OpAppendChild:
		return "AppendChild"
	case OpRemoveChild:
		return "RemoveChild"
	case OpInsertBefore:
		return "InsertBefore"
	default:
		return "Unknown"
	}
}

// ErrUnknownOp is returned when decoding hits an op code this version does
// not know. Ops have no self-describing length, so the stream cannot be
// resynchronized past an unknown code.
var ErrUnknownOp = errors.New("protocol: unknown op code")

// ValueKind tags a property value on the wire.
type ValueKind uint8

const (
	ValueNull   ValueKind = 0x00
	ValueString ValueKind = 0x01
	ValueBool   ValueKind = 0x02
	ValueNumber ValueKind = 0x03
)

// PropValue is a property value crossing the wire: null, string, bool, or
// number. Richer values are stringified before encoding.
type PropValue struct {
	Kind ValueKind
	Str  string
	Bool bool
	Num  float64
}

// NullValue returns the null property value.
func NullValue() PropValue { return PropValue{Kind: ValueNull} }

// StringValue returns a string property value.
func StringValue(s string) PropValue { return PropValue{Kind: ValueString, Str: s} }

// BoolValue returns a boolean property value.
func BoolValue(b bool) PropValue { return PropValue{Kind: ValueBool, Bool: b} }

// NumberValue returns a numeric property value.
func NumberValue(f float64) PropValue { return PropValue{Kind: ValueNumber, Num: f} }

// PropValueOf converts an arbitrary property value to its wire form.
func PropValueOf(v any) PropValue {
	switch x := v.(type) {
	case nil:
		return NullValue()
	case string:
		return StringValue(x)
	case bool:
		return BoolValue(x)
	case int:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case uint64:
		return NumberValue(float64(x))
	case float32:
		return NumberValue(float64(x))
	case float64:
		return NumberValue(x)
	default:
		return StringValue(fmt.Sprintf("%v", x))
	}
}

// Any converts a wire property value back to a Go value.
func (v PropValue) Any() any {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueBool:
		return v.Bool
	case ValueNumber:
		return v.Num
	default:
		return nil
	}
}

func encodePropValue(e *Encoder, v PropValue) {
	e.WriteByte(byte(v.Kind))
	switch v.Kind {
	case ValueString:
		e.WriteString(v.Str)
	case ValueBool:
		e.WriteBool(v.Bool)
	case ValueNumber:
		e.WriteFloat64(v.Num)
	}
}

func decodePropValue(d *Decoder) (PropValue, error) {
	kind, err := d.ReadByte()
	if err != nil {
		return PropValue{}, err
	}
	v := PropValue{Kind: ValueKind(kind)}
	switch v.Kind {
	case ValueNull:
	case ValueString:
		v.Str, err = d.ReadString()
	case ValueBool:
		v.Bool, err = d.ReadBool()
	case ValueNumber:
		v.Num, err = d.ReadFloat64()
	default:
		return PropValue{}, fmt.Errorf("protocol: unknown value kind 0x%02x", kind)
	}
	return v, err
}

// Op is a single host-tree mutation. Node references are small integers
// assigned by the recording adapter; 0 is never a valid node.
type Op struct {
	Code     OpCode
	Target   uint64    // node the op applies to (the parent for tree ops)
	Child    uint64    // child ref for AppendChild/RemoveChild/InsertBefore
	Ref      uint64    // InsertBefore reference node; 0 appends
	Listener uint64    // listener handle for Add/RemoveEventListener
	Name     string    // tag, attribute/style/property name, or event type
	Value    PropValue // attribute/style/text/property payload
}

// OpsFrame is a sequenced batch of mutations: everything one flush pass
// did to the host tree, applied atomically on the far side.
type OpsFrame struct {
	Seq uint64
	Ops []Op
}

// EncodeOps encodes an ops frame to bytes.
func EncodeOps(of *OpsFrame) []byte {
	e := NewEncoder()
	EncodeOpsTo(e, of)
	return e.Bytes()
}

// EncodeOpsTo encodes an ops frame using the provided encoder.
func EncodeOpsTo(e *Encoder, of *OpsFrame) {
	e.WriteUvarint(of.Seq)
	e.WriteUvarint(uint64(len(of.Ops)))
	for i := range of.Ops {
		encodeOp(e, &of.Ops[i])
	}
}

func encodeOp(e *Encoder, op *Op) {
	e.WriteByte(byte(op.Code))
	e.WriteUvarint(op.Target)

	switch op.Code {
	case OpCreateElement:
		e.WriteString(op.Name)

	case OpCreateText, OpSetTextContent, OpSetInnerMarkup:
		e.WriteString(op.Value.Str)

	case OpSetAttribute, OpSetStyleProperty:
		e.WriteString(op.Name)
		e.WriteString(op.Value.Str)

	case OpRemoveAttribute, OpRemoveStyleProperty:
		e.WriteString(op.Name)

	case OpSetProperty:
		e.WriteString(op.Name)
		encodePropValue(e, op.Value)

	case OpAddEventListener, OpRemoveEventListener:
		e.WriteString(op.Name)
		e.WriteUvarint(op.Listener)

	case OpAppendChild, OpRemoveChild:
		e.WriteUvarint(op.Child)

	case OpInsertBefore:
		e.WriteUvarint(op.Child)
		e.WriteUvarint(op.Ref)
	}
}

// DecodeOps decodes an ops frame from bytes.
func DecodeOps(data []byte) (*OpsFrame, error) {
	d := NewDecoder(data)
	return DecodeOpsFrom(d)
}

// DecodeOpsFrom decodes an ops frame from a decoder.
func DecodeOpsFrom(d *Decoder) (*OpsFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	count, err := d.ReadCount()
	if err != nil {
		return nil, err
	}

	ops := make([]Op, count)
	for i := 0; i < count; i++ {
		if err := decodeOp(d, &ops[i]); err != nil {
			return nil, err
		}
	}

	return &OpsFrame{Seq: seq, Ops: ops}, nil
}

func decodeOp(d *Decoder, op *Op) error {
	codeByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	op.Code = OpCode(codeByte)

	op.Target, err = d.ReadUvarint()
	if err != nil {
		return err
	}

	switch op.Code {
	case OpCreateElement:
		op.Name, err = d.ReadString()

	case OpCreateText, OpSetTextContent, OpSetInnerMarkup:
		op.Value.Kind = ValueString
		op.Value.Str, err = d.ReadString()

	case OpSetAttribute, OpSetStyleProperty:
		op.Name, err = d.ReadString()
		if err != nil {
			return err
		}
		op.Value.Kind = ValueString
		op.Value.Str, err = d.ReadString()

	case OpRemoveAttribute, OpRemoveStyleProperty:
		op.Name, err = d.ReadString()

	case OpSetProperty:
		op.Name, err = d.ReadString()
		if err != nil {
			return err
		}
		op.Value, err = decodePropValue(d)

	case OpAddEventListener, OpRemoveEventListener:
		op.Name, err = d.ReadString()
		if err != nil {
			return err
		}
		op.Listener, err = d.ReadUvarint()

	case OpAppendChild, OpRemoveChild:
		op.Child, err = d.ReadUvarint()

	case OpInsertBefore:
		op.Child, err = d.ReadUvarint()
		if err != nil {
			return err
		}
		op.Ref, err = d.ReadUvarint()

	default:
		return ErrUnknownOp
	}

	return err
}

// NewCreateElementOp creates a CreateElement op.
func NewCreateElementOp(ref uint64, tag string) Op {
	return Op{Code: OpCreateElement, Target: ref, Name: tag}
}

// NewCreateTextOp creates a CreateText op.
func NewCreateTextOp(ref uint64, text string) Op {
	return Op{Code: OpCreateText, Target: ref, Value: StringValue(text)}
}

// NewSetAttributeOp creates a SetAttribute op.
func NewSetAttributeOp(ref uint64, name, value string) Op {
	return Op{Code: OpSetAttribute, Target: ref, Name: name, Value: StringValue(value)}
}

// NewRemoveAttributeOp creates a RemoveAttribute op.
func NewRemoveAttributeOp(ref uint64, name string) Op {
	return Op{Code: OpRemoveAttribute, Target: ref, Name: name}
}

// NewSetPropertyOp creates a SetProperty op.
func NewSetPropertyOp(ref uint64, name string, value PropValue) Op {
	return Op{Code: OpSetProperty, Target: ref, Name: name, Value: value}
}

// NewSetStylePropertyOp creates a SetStyleProperty op.
func NewSetStylePropertyOp(ref uint64, property, value string) Op {
	return Op{Code: OpSetStyleProperty, Target: ref, Name: property, Value: StringValue(value)}
}

// NewRemoveStylePropertyOp creates a RemoveStyleProperty op.
func NewRemoveStylePropertyOp(ref uint64, property string) Op {
	return Op{Code: OpRemoveStyleProperty, Target: ref, Name: property}
}

// NewSetTextContentOp creates a SetTextContent op.
func NewSetTextContentOp(ref uint64, text string) Op {
	return Op{Code: OpSetTextContent, Target: ref, Value: StringValue(text)}
}

// NewSetInnerMarkupOp creates a SetInnerMarkup op.
func NewSetInnerMarkupOp(ref uint64, markup string) Op {
	return Op{Code: OpSetInnerMarkup, Target: ref, Value: StringValue(markup)}
}

// NewAddEventListenerOp creates an AddEventListener op.
func NewAddEventListenerOp(ref uint64, eventType string, listener uint64) Op {
	return Op{Code: OpAddEventListener, Target: ref, Name: eventType, Listener: listener}
}

// NewRemoveEventListenerOp creates a RemoveEventListener op.
func NewRemoveEventListenerOp(ref uint64, eventType string, listener uint64) Op {
	return Op{Code: OpRemoveEventListener, Target: ref, Name: eventType, Listener: listener}
}

// NewAppendChildOp creates an AppendChild op.
func NewAppendChildOp(parent, child uint64) Op {
	return Op{Code: OpAppendChild, Target: parent, Child: child}
}

// NewRemoveChildOp creates a RemoveChild op.
func NewRemoveChildOp(parent, child uint64) Op {
	return Op{Code: OpRemoveChild, Target: parent, Child: child}
}

// NewInsertBeforeOp creates an InsertBefore op. A zero ref appends.
func NewInsertBeforeOp(parent, child, ref uint64) Op {
	return Op{Code: OpInsertBefore, Target: parent, Child: child, Ref: ref}
}
