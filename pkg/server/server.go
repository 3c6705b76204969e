package server

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filament-ui/filament/pkg/protocol"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/render"
	"github.com/filament-ui/filament/pkg/vnode"
)

// Server serves the rendered page over HTTP and live sessions over
// websockets. Each websocket connection gets its own mounted tree; the
// page route renders a throwaway static snapshot for first paint.
type Server struct {
	root     func() *vnode.VNode
	config   *Config
	sessions *SessionManager
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *Metrics

	httpServer *http.Server
}

// New creates a server for the given root view factory.
func New(root func() *vnode.VNode, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		config.applyDefaults()
	}

	return &Server{
		root:     root,
		config:   config,
		sessions: NewSessionManager(config.MaxSessions),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:  slog.Default().With("component", "server"),
		metrics: NewMetrics(),
	}
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SetLogger replaces the server's logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handler returns the full route tree for mounting or serving.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/_filament/ws", s.handleWebSocket)
	r.Get("/_filament/client.js", s.handleClientScript)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestLogger logs page requests; socket and probe routes stay quiet.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}

// handlePage renders the static first-paint document. The live socket
// replaces the body contents once connected.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	var renderErr error

	owner := reactive.NewOwner(nil)
	reactive.WithOwner(owner, func() {
		renderer := render.NewRenderer(render.Config{Pretty: s.config.Pretty})
		renderErr = renderer.RenderPage(&buf, render.PageData{
			Body:         s.root(),
			Title:        s.config.Title,
			Lang:         s.config.Lang,
			StyleSheets:  s.config.StyleSheets,
			ClientScript: "/_filament/client.js",
		})
	})
	owner.Dispose()

	if renderErr != nil {
		s.logger.Error("page render failed", "error", renderErr)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(buf.Bytes()))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// handleWebSocket upgrades the connection, performs the hello exchange
// and runs the session until the socket drops.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(int64(protocol.MaxPayloadSize + protocol.FrameHeaderSize))
	conn.SetReadDeadline(time.Now().Add(s.config.HandshakeTimeout))

	hello, err := s.readHello(conn)
	if err != nil {
		s.logger.Warn("handshake failed", "error", err)
		conn.Close()
		return
	}
	conn.SetReadDeadline(time.Time{})

	if hello.Version != protocol.ProtocolVersion {
		s.sendHelloError(conn, protocol.ErrInvalidFrame,
			fmt.Sprintf("unsupported protocol version %d", hello.Version))
		conn.Close()
		return
	}

	// A returning session ID cannot be resumed: no op history is kept,
	// so the client must fall back to a fresh session and a clean mount.
	session, err := NewSession(s.root, s.config, s.logger)
	if err != nil {
		s.logger.Error("session mount failed", "error", err)
		s.sendHelloError(conn, protocol.ErrServerError, "mount failed")
		conn.Close()
		return
	}
	session.metrics = s.metrics
	session.onClose = func(sess *Session) {
		s.sessions.Remove(sess.ID)
		s.metrics.SessionClosed()
	}

	if err := s.sessions.Add(session); err != nil {
		s.sendHelloError(conn, protocol.ErrRateLimited, "session limit reached")
		conn.Close()
		return
	}
	s.metrics.SessionOpened()

	reply := &protocol.Hello{
		Version:   protocol.ProtocolVersion,
		SessionID: session.ID,
	}
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, (&protocol.Frame{
		Type:    protocol.FrameHello,
		Payload: protocol.EncodeHello(reply),
	}).Encode()); err != nil {
		session.Close()
		return
	}

	s.logger.Info("session started", "session_id", session.ID, "resumed_from", hello.SessionID)

	// Blocks for the life of the connection. The first flush carries the
	// mount ops that replace the static first paint.
	session.Attach(conn)
}

func (s *Server) readHello(conn *websocket.Conn) (*protocol.Hello, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("reading hello: %w", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		return nil, fmt.Errorf("decoding hello frame: %w", err)
	}
	if frame.Type != protocol.FrameHello {
		return nil, fmt.Errorf("expected hello frame, got %v", frame.Type)
	}
	return protocol.DecodeHello(frame.Payload)
}

func (s *Server) sendHelloError(conn *websocket.Conn, code protocol.ErrorCode, message string) {
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	conn.WriteMessage(websocket.BinaryMessage, (&protocol.Frame{
		Type:    protocol.FrameError,
		Payload: protocol.EncodeErrorMessage(protocol.NewFatalError(code, message)),
	}).Encode())
}

func (s *Server) handleClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(thinClientJS))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","sessions":%d}`+"\n", s.sessions.Count())
}

// Sessions returns the session registry.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	s.sessions.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
