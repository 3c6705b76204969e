package server

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/filament-ui/filament/pkg/bind"
	"github.com/filament-ui/filament/pkg/host"
	"github.com/filament-ui/filament/pkg/protocol"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vnode"
)

// Session is one live connection: a mounted view tree bound to a recorder,
// whose ops stream over the socket to the client mirror.
type Session struct {
	ID string

	recorder *Recorder
	owner    *reactive.Owner
	root     *vnode.VNode

	conn    *websocket.Conn
	writeMu sync.Mutex

	// flushMu keeps drain-and-send atomic so sequenced frames cannot be
	// written out of order by the push loop and the event path racing.
	flushMu sync.Mutex

	config  *Config
	logger  *slog.Logger
	metrics *Metrics

	lastActive   time.Time
	lastActiveMu sync.Mutex

	closeOnce sync.Once
	done      chan struct{}

	onClose func(*Session)
}

// NewSession mounts the root view into a fresh recorder. The socket is
// attached afterwards with Attach; until then ops simply buffer.
func NewSession(root func() *vnode.VNode, cfg *Config, logger *slog.Logger) (*Session, error) {
	s := &Session{
		ID:         uuid.New().String(),
		recorder:   NewRecorder(),
		owner:      reactive.NewOwner(nil),
		config:     cfg,
		logger:     logger,
		lastActive: time.Now(),
		done:       make(chan struct{}),
	}
	s.logger = logger.With("session_id", s.ID)

	var mountErr error
	reactive.WithOwner(s.owner, func() {
		s.root = root()
		_, mountErr = bind.Mount(s.root, s.recorder, s.recorder.Container())
	})
	if mountErr != nil {
		s.owner.Dispose()
		return nil, fmt.Errorf("session %s: mount: %w", s.ID, mountErr)
	}

	// The mount ops stay buffered: the client builds its ref map from
	// them on first flush, replacing the statically rendered first paint.
	return s, nil
}

// Attach binds the socket and starts the read and push loops. It blocks
// until the connection ends.
func (s *Session) Attach(conn *websocket.Conn) {
	s.conn = conn
	go s.pushLoop()
	s.readLoop()
}

// HandleEvent dispatches a client event into the mirror. Listener effects
// run synchronously, so any resulting ops are buffered before return.
func (s *Session) HandleEvent(ev *protocol.EventMessage) error {
	node := s.recorder.NodeByRef(ev.Target)
	if node == nil {
		return fmt.Errorf("event target %d not found", ev.Target)
	}

	data := make(map[string]any, len(ev.Data))
	for k, v := range ev.Data {
		data[k] = v
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event handler panicked", "event", ev.Type, "target", ev.Target, "panic", r)
			s.sendError(protocol.ErrHandlerPanic, fmt.Sprintf("handler for %s panicked", ev.Type))
		}
	}()

	node.Dispatch(host.Event{Type: ev.Type, Data: data})
	if s.metrics != nil {
		s.metrics.EventDispatched()
	}
	s.touch()
	return nil
}

// ResyncHTML renders the mirror as a full HTML snapshot for clients whose
// tree has drifted. There is no op history to replay; resync is a reload.
func (s *Session) ResyncHTML() string {
	return s.recorder.Container().InnerHTML()
}

// Flush sends any buffered ops as sequenced frames. Large batches are
// split so no payload exceeds the frame length field.
func (s *Session) Flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	frames := s.recorder.TakeFrames(protocol.MaxPayloadSize - 64)
	for _, frame := range frames {
		err := s.writeFrame(&protocol.Frame{
			Type:    protocol.FrameOps,
			Flags:   protocol.FlagSequenced,
			Payload: protocol.EncodeOps(frame),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// pushLoop forwards recorder activity and pings to the socket until the
// session ends.
func (s *Session) pushLoop() {
	ping := time.NewTicker(s.config.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-s.recorder.Notify():
			if err := s.Flush(); err != nil {
				s.logger.Debug("flush failed", "error", err)
				s.Close()
				return
			}
		case <-ping.C:
			ct, msg := protocol.NewPing(uint64(time.Now().UnixMilli()))
			if err := s.writeFrame(&protocol.Frame{
				Type:    protocol.FrameControl,
				Payload: protocol.EncodeControl(ct, msg),
			}); err != nil {
				s.Close()
				return
			}
		}
	}
}

// readLoop consumes client frames until the connection drops.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("connection lost", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("bad frame", "error", err)
			s.sendError(protocol.ErrInvalidFrame, "malformed frame")
			continue
		}

		if err := s.handleFrame(frame); err != nil {
			s.logger.Warn("frame rejected", "type", frame.Type, "error", err)
		}
	}
}

func (s *Session) handleFrame(frame *protocol.Frame) error {
	switch frame.Type {
	case protocol.FrameEvent:
		ev, err := protocol.DecodeEvent(frame.Payload)
		if err != nil {
			s.sendError(protocol.ErrInvalidEvent, "malformed event")
			return err
		}
		if err := s.HandleEvent(ev); err != nil {
			s.sendError(protocol.ErrListenerNotFound, err.Error())
			return err
		}
		return s.Flush()

	case protocol.FrameAck:
		_, err := protocol.DecodeAck(frame.Payload)
		s.touch()
		return err

	case protocol.FrameControl:
		ct, payload, err := protocol.DecodeControl(frame.Payload)
		if err != nil {
			return err
		}
		return s.handleControl(ct, payload)

	default:
		s.sendError(protocol.ErrInvalidFrame, fmt.Sprintf("unexpected frame type 0x%02x", byte(frame.Type)))
		return fmt.Errorf("unexpected frame type %v", frame.Type)
	}
}

func (s *Session) handleControl(ct protocol.ControlType, payload any) error {
	switch ct {
	case protocol.ControlPing:
		ping := payload.(*protocol.PingPong)
		pt, pong := protocol.NewPong(ping.Timestamp)
		return s.writeFrame(&protocol.Frame{
			Type:    protocol.FrameControl,
			Payload: protocol.EncodeControl(pt, pong),
		})

	case protocol.ControlPong:
		s.touch()
		return nil

	case protocol.ControlResyncRequest:
		// No op history is kept. Any gap means a full snapshot, or an
		// empty one when it doesn't fit a frame, which makes the client
		// reload the page instead.
		html := s.ResyncHTML()
		if len(html) > protocol.MaxPayloadSize-64 {
			html = ""
		}
		return s.writeFrame(&protocol.Frame{
			Type: protocol.FrameControl,
			Payload: protocol.EncodeControl(protocol.ControlResyncFull, &protocol.ResyncFull{
				HTML: html,
			}),
		})

	case protocol.ControlClose:
		s.Close()
		return nil

	default:
		return fmt.Errorf("unknown control type %v", ct)
	}
}

func (s *Session) writeFrame(f *protocol.Frame) error {
	if s.conn == nil {
		return nil
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	data := f.Encode()
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.FrameSent(len(data))
	}
	return nil
}

func (s *Session) sendError(code protocol.ErrorCode, message string) {
	err := s.writeFrame(&protocol.Frame{
		Type:    protocol.FrameError,
		Payload: protocol.EncodeErrorMessage(protocol.NewError(code, message)),
	})
	if err != nil {
		s.logger.Debug("error frame write failed", "error", err)
	}
}

func (s *Session) touch() {
	s.lastActiveMu.Lock()
	s.lastActive = time.Now()
	s.lastActiveMu.Unlock()
}

// LastActive reports when the client last showed signs of life.
func (s *Session) LastActive() time.Time {
	s.lastActiveMu.Lock()
	defer s.lastActiveMu.Unlock()
	return s.lastActive
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close tears down bindings, disposes the signal graph and closes the
// socket. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		bind.Unmount(s.root, s.recorder)
		s.owner.Dispose()

		if s.conn != nil {
			ct, msg := protocol.NewClose(protocol.CloseNormal, "")
			s.writeFrame(&protocol.Frame{
				Type:    protocol.FrameControl,
				Payload: protocol.EncodeControl(ct, msg),
			})
			s.conn.Close()
		}

		if s.onClose != nil {
			s.onClose(s)
		}
	})
}

// BodyHTML returns the current HTML of the mounted tree, used for the page
// response the client hydrates against.
func (s *Session) BodyHTML() string {
	return s.recorder.Container().InnerHTML()
}
