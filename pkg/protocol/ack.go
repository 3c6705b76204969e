package protocol

// DefaultWindow is the receive window a client advertises when it has no
// better estimate of its own backlog.
const DefaultWindow = 100

// Ack reports how far the client has applied the op stream. LastSeq is the
// highest sequence applied in order; Window is how many further frames the
// client is prepared to buffer. The server uses acks to spot a client that
// has stopped keeping up.
type Ack struct {
	LastSeq uint64
	Window  uint64
}

// EncodeAck encodes an Ack to bytes.
func EncodeAck(ack *Ack) []byte {
	e := NewEncoder()
	e.WriteUvarint(ack.LastSeq)
	e.WriteUvarint(ack.Window)
	return e.Bytes()
}

// DecodeAck decodes an Ack from bytes.
func DecodeAck(data []byte) (*Ack, error) {
	d := NewDecoder(data)

	lastSeq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	window, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	return &Ack{LastSeq: lastSeq, Window: window}, nil
}
