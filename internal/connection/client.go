package connection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pmarean/stb8ctl/internal/protocol"
)

// Client represents a single WebSocket connection to the box.
type Client interface {
	// Connect establishes the WebSocket connection and starts the
	// background receive loop.
	Connect(ctx context.Context) error

	// Close gracefully closes the connection. The receive loop observes
	// the closure and exits; calling Close more than once is a no-op.
	Close() error

	// Send writes one text frame on the caller's goroutine. There is no
	// internal queueing: if the connection is down, the error is the
	// caller's to handle.
	Send(data []byte) error

	// IsConnected returns current connection state.
	IsConnected() bool
}

// client implements the Client interface.
type client struct {
	cfg     ClientConfig
	handler Handler
	logger  *slog.Logger

	conn *websocket.Conn

	done chan struct{}

	// Write serialization
	writeMu sync.Mutex

	// State
	mu        sync.RWMutex
	connected bool
	closed    bool
}

// NewClient creates a new WebSocket client. The handler is fixed at
// construction so the receive loop never observes a partially-built owner;
// no frames are read until Connect is called.
func NewClient(cfg ClientConfig, handler Handler, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &client{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Connect establishes the WebSocket connection.
func (c *client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrAlreadyClosed
	}
	c.mu.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout: c.cfg.HandshakeTimeout,
		Subprotocols:     []string{protocol.Subprotocol},
	}

	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.receiveLoop()

	c.logger.Debug("websocket connected",
		"url", c.cfg.URL,
		"subprotocol", conn.Subprotocol(),
	)

	return nil
}

// Close gracefully closes the connection.
func (c *client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.connected = false
	c.mu.Unlock()

	// Signal the receive loop to treat the read error as shutdown
	close(c.done)

	if c.conn != nil {
		// Send close message
		c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		return c.conn.Close()
	}

	return nil
}

// Send writes one text frame to the connection.
func (c *client) Send(data []byte) error {
	c.mu.RLock()
	if !c.connected {
		c.mu.RUnlock()
		return ErrNotConnected
	}
	c.mu.RUnlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// IsConnected returns the current connection state.
func (c *client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// receiveLoop reads frames until the connection closes, decoding each one
// and dispatching it to the handler. A single loop drives each connection,
// so handler invocations are serialized in transport-delivery order.
func (c *client) receiveLoop() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Closure we asked for; normal termination.
			default:
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.logger.Debug("connection closed by peer")
				} else {
					c.logger.Warn("receive loop exiting", "error", err)
				}
			}
			return
		}

		c.handler.HandleInbound(protocol.Decode(data))
	}
}
