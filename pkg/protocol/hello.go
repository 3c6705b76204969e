package protocol

// ProtocolVersion is the current wire protocol version.
const ProtocolVersion uint16 = 1

// Hello is the first frame on a new connection. The server echoes it back
// with the session ID filled in; a client reconnecting sends the prior
// session ID and its last received sequence number.
type Hello struct {
	Version   uint16
	SessionID string
	LastSeq   uint64
}

// EncodeHello encodes a Hello to bytes.
func EncodeHello(h *Hello) []byte {
	e := NewEncoder()
	e.WriteUint16(h.Version)
	e.WriteString(h.SessionID)
	e.WriteUvarint(h.LastSeq)
	return e.Bytes()
}

// DecodeHello decodes a Hello from bytes.
func DecodeHello(data []byte) (*Hello, error) {
	d := NewDecoder(data)

	version, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	sessionID, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	lastSeq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	return &Hello{Version: version, SessionID: sessionID, LastSeq: lastSeq}, nil
}
