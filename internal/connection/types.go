package connection

import (
	"errors"
	"time"

	"github.com/pmarean/stb8ctl/internal/protocol"
)

// Errors
var (
	ErrNotConnected  = errors.New("not connected")
	ErrAlreadyClosed = errors.New("already closed")
)

// Handler receives every decoded inbound message, invoked synchronously from
// the connection's receive loop. Implementations must not block indefinitely:
// the loop does not read the next frame until the handler returns.
type Handler interface {
	HandleInbound(msg protocol.Inbound)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(msg protocol.Inbound)

// HandleInbound calls f(msg).
func (f HandlerFunc) HandleInbound(msg protocol.Inbound) { f(msg) }

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL              string        // WebSocket URL (e.g., ws://192.168.1.246:7682)
	HandshakeTimeout time.Duration // Dial handshake deadline
	WriteTimeout     time.Duration // Write deadline for sends
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     5 * time.Second,
	}
}
