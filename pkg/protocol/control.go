package protocol

// ControlType identifies the type of control message.
type ControlType uint8

const (
	ControlPing          ControlType = 0x01 // Liveness probe
	ControlPong          ControlType = 0x02 // Probe response, echoes the timestamp
	ControlResyncRequest ControlType = 0x10 // Client noticed a sequence gap
	ControlResyncFull    ControlType = 0x12 // Full re-render, or empty meaning reload
	ControlClose         ControlType = 0x20 // Session close with reason
)

// String returns the control type name.
func (ct ControlType) String() string {
	switch ct {
	case ControlPing:
		return "Ping"
	case ControlPong:
		return "Pong"
	case ControlResyncRequest:
		return "ResyncRequest"
	case ControlResyncFull:
		return "ResyncFull"
	case ControlClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// CloseReason indicates why a session is being closed.
type CloseReason uint8

const (
	CloseNormal         CloseReason = 0x00
	CloseGoingAway      CloseReason = 0x01
	CloseSessionExpired CloseReason = 0x02
	CloseServerShutdown CloseReason = 0x03
	CloseError          CloseReason = 0x04
)

// String returns the close reason name.
func (cr CloseReason) String() string {
	switch cr {
	case CloseNormal:
		return "Normal"
	case CloseGoingAway:
		return "GoingAway"
	case CloseSessionExpired:
		return "SessionExpired"
	case CloseServerShutdown:
		return "ServerShutdown"
	case CloseError:
		return "Error"
	default:
		return "Unknown"
	}
}

// PingPong carries the sender's timestamp in Unix milliseconds; the pong
// echoes it back so either side can measure round-trip time.
type PingPong struct {
	Timestamp uint64
}

// ResyncRequest is sent by a client that missed ops frames. The server
// responds with a full reload; the op stream has no replay history.
type ResyncRequest struct {
	LastSeq uint64
}

// ResyncFull carries a complete re-render of the page. An empty HTML
// string tells the client the snapshot did not fit and it must reload.
type ResyncFull struct {
	HTML string
}

// CloseMessage is sent when closing a session.
type CloseMessage struct {
	Reason  CloseReason
	Message string
}

// EncodeControl encodes a control message to bytes: the type byte followed
// by a payload fixed by the payload's own type. Payload and control type
// must agree; a mismatched or nil payload encodes as the bare type byte,
// which a decoder for a payload-carrying type rejects.
func EncodeControl(ct ControlType, payload any) []byte {
	e := NewEncoder()
	e.WriteByte(byte(ct))

	switch p := payload.(type) {
	case *PingPong:
		e.WriteUint64(p.Timestamp)
	case *ResyncRequest:
		e.WriteUvarint(p.LastSeq)
	case *ResyncFull:
		e.WriteString(p.HTML)
	case *CloseMessage:
		e.WriteByte(byte(p.Reason))
		e.WriteString(p.Message)
	}

	return e.Bytes()
}

// DecodeControl decodes a control message, returning the control type and
// its typed payload. Unrecognized control types decode to a nil payload so
// a peer can skip messages from a newer protocol revision.
func DecodeControl(data []byte) (ControlType, any, error) {
	d := NewDecoder(data)

	typeByte, err := d.ReadByte()
	if err != nil {
		return 0, nil, err
	}
	ct := ControlType(typeByte)

	switch ct {
	case ControlPing, ControlPong:
		ts, err := d.ReadUint64()
		if err != nil {
			return ct, nil, err
		}
		return ct, &PingPong{Timestamp: ts}, nil

	case ControlResyncRequest:
		lastSeq, err := d.ReadUvarint()
		if err != nil {
			return ct, nil, err
		}
		return ct, &ResyncRequest{LastSeq: lastSeq}, nil

	case ControlResyncFull:
		html, err := d.ReadString()
		if err != nil {
			return ct, nil, err
		}
		return ct, &ResyncFull{HTML: html}, nil

	case ControlClose:
		reason, err := d.ReadByte()
		if err != nil {
			return ct, nil, err
		}
		message, err := d.ReadString()
		if err != nil {
			return ct, nil, err
		}
		return ct, &CloseMessage{Reason: CloseReason(reason), Message: message}, nil

	default:
		return ct, nil, nil
	}
}

// NewPing creates a Ping message.
func NewPing(timestamp uint64) (ControlType, *PingPong) {
	return ControlPing, &PingPong{Timestamp: timestamp}
}

// NewPong creates a Pong message.
func NewPong(timestamp uint64) (ControlType, *PingPong) {
	return ControlPong, &PingPong{Timestamp: timestamp}
}

// NewClose creates a Close message.
func NewClose(reason CloseReason, message string) (ControlType, *CloseMessage) {
	return ControlClose, &CloseMessage{Reason: reason, Message: message}
}
