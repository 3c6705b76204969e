package protocol

// EventMessage is a host event reported by the client: which node it fired
// on, the event type, and a flat bag of payload fields (input value,
// pressed key, pointer coordinates and the like).
type EventMessage struct {
	Target uint64
	Type   string
	Data   map[string]string
}

// EncodeEvent encodes an event message to bytes.
func EncodeEvent(ev *EventMessage) []byte {
	e := NewEncoder()
	e.WriteUvarint(ev.Target)
	e.WriteString(ev.Type)
	e.WriteUvarint(uint64(len(ev.Data)))
	for k, v := range ev.Data {
		e.WriteString(k)
		e.WriteString(v)
	}
	return e.Bytes()
}

// DecodeEvent decodes an event message from bytes.
func DecodeEvent(data []byte) (*EventMessage, error) {
	d := NewDecoder(data)

	target, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	typ, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCount()
	if err != nil {
		return nil, err
	}

	var fields map[string]string
	if count > 0 {
		fields = make(map[string]string, count)
		for i := 0; i < count; i++ {
			k, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			v, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			fields[k] = v
		}
	}

	return &EventMessage{Target: target, Type: typ, Data: fields}, nil
}
