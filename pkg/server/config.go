package server

import (
	"net/http"
	"time"
)

// Config holds server settings. Zero values are filled in by New.
type Config struct {
	// Address is the host:port to listen on.
	Address string

	// Title, Lang and StyleSheets feed the rendered page shell.
	Title       string
	Lang        string
	StyleSheets []string

	// Pretty enables indented HTML on the page route.
	Pretty bool

	// ReadBufferSize and WriteBufferSize size the websocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the websocket Origin header. Nil allows
	// same-host origins only.
	CheckOrigin func(*http.Request) bool

	// PingInterval is how often idle sockets are pinged.
	PingInterval time.Duration

	// WriteTimeout bounds a single socket write.
	WriteTimeout time.Duration

	// HandshakeTimeout bounds the wait for the client hello.
	HandshakeTimeout time.Duration

	// MaxSessions caps concurrent live sessions. Zero means no cap.
	MaxSessions int

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:          "localhost:3000",
		Title:            "Filament App",
		Lang:             "en",
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
		PingInterval:     30 * time.Second,
		WriteTimeout:     10 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		ShutdownTimeout:  15 * time.Second,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Lang == "" {
		c.Lang = d.Lang
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.PingInterval == 0 {
		c.PingInterval = d.PingInterval
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = d.HandshakeTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
}
