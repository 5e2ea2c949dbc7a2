package status

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pmarean/stb8ctl/internal/connection"
	"github.com/pmarean/stb8ctl/internal/protocol"
)

// DefaultPort is the box's status-notification WebSocket port.
const DefaultPort = 7684

// Config configures a Listener.
type Config struct {
	Host string // Box address (required)
	Port int    // Status port (0 = DefaultPort)

	// OnStatusChange is invoked with the new power state for every status
	// push, from the receive loop. Nil means pushes are discarded.
	OnStatusChange func(powerOn bool)
}

// Listener receives power-status pushes from the box.
type Listener struct {
	client         connection.Client
	onStatusChange func(powerOn bool)
	logger         *slog.Logger
}

// Dial connects to the box's status port and returns a running Listener.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}

	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	l := &Listener{
		onStatusChange: cfg.OnStatusChange,
		logger:         logger,
	}

	clientCfg := connection.DefaultClientConfig()
	clientCfg.URL = fmt.Sprintf("ws://%s:%d", cfg.Host, port)

	l.client = connection.NewClient(clientCfg, l, logger.With("conn", "status"))
	if err := l.client.Connect(ctx); err != nil {
		return nil, err
	}

	return l, nil
}

// Close closes the status connection.
func (l *Listener) Close() error {
	return l.client.Close()
}

// HandleInbound relays status pushes to the callback. Invoked from the
// connection's receive loop.
func (l *Listener) HandleInbound(msg protocol.Inbound) {
	if msg.Kind != protocol.KindStatus {
		l.logger.Debug("discarding non-status message", "kind", msg.Kind, "payload", string(msg.Raw))
		return
	}

	powerOn := msg.Status.Status == protocol.PowerOn
	if l.onStatusChange == nil {
		return
	}
	l.onStatusChange(powerOn)
}
