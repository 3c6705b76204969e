package protocol

// ErrorCode classifies an error frame.
type ErrorCode uint16

const (
	ErrUnknown          ErrorCode = 0x0000 // Unclassified
	ErrInvalidFrame     ErrorCode = 0x0001 // Malformed or unexpected frame
	ErrInvalidEvent     ErrorCode = 0x0002 // Malformed event payload
	ErrListenerNotFound ErrorCode = 0x0003 // Event targeted an unknown node ref
	ErrHandlerPanic     ErrorCode = 0x0004 // Event handler panicked server-side
	ErrSessionExpired   ErrorCode = 0x0005 // Session no longer resumable
	ErrRateLimited      ErrorCode = 0x0006 // Session cap or request flood
	ErrServerError      ErrorCode = 0x0100 // Internal server failure
)

var errorCodeNames = map[ErrorCode]string{
	ErrUnknown:          "Unknown",
	ErrInvalidFrame:     "InvalidFrame",
	ErrInvalidEvent:     "InvalidEvent",
	ErrListenerNotFound: "ListenerNotFound",
	ErrHandlerPanic:     "HandlerPanic",
	ErrSessionExpired:   "SessionExpired",
	ErrRateLimited:      "RateLimited",
	ErrServerError:      "ServerError",
}

// String returns the error code name.
func (ec ErrorCode) String() string {
	if name, ok := errorCodeNames[ec]; ok {
		return name
	}
	return "Unknown"
}

// ErrorMessage is the payload of an error frame. Non-fatal errors report a
// problem with one message, an unroutable event for instance, and leave the
// connection up; a fatal error is the server's last word before closing.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
	Fatal   bool
}

// NewError creates a non-fatal ErrorMessage.
func NewError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// NewFatalError creates an ErrorMessage that announces connection close.
func NewFatalError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message, Fatal: true}
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	if em.Fatal {
		return "fatal: " + em.Code.String() + ": " + em.Message
	}
	return em.Code.String() + ": " + em.Message
}

// EncodeErrorMessage encodes an ErrorMessage to bytes.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage from bytes.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)

	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	message, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}

	return &ErrorMessage{Code: ErrorCode(code), Message: message, Fatal: fatal}, nil
}
