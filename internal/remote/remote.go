package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pmarean/stb8ctl/internal/connection"
	"github.com/pmarean/stb8ctl/internal/protocol"
)

// DefaultPort is the box's remote-control WebSocket port.
const DefaultPort = 7682

// DefaultTimeout is the response wait applied when Config.Timeout is unset
// by DefaultConfig.
const DefaultTimeout = 10 * time.Second

// Config configures a Remote.
type Config struct {
	Host    string        // Box address (required)
	Port    int           // Command port (0 = DefaultPort)
	Timeout time.Duration // Response wait per command (0 = wait forever)
}

// DefaultConfig returns a Config for host with the default port and timeout.
func DefaultConfig(host string) Config {
	return Config{
		Host:    host,
		Port:    DefaultPort,
		Timeout: DefaultTimeout,
	}
}

// Remote is a remote control for the box. It is safe for concurrent use:
// commands issued from multiple goroutines block independently, each on its
// own pending entry.
type Remote struct {
	client  connection.Client
	timeout time.Duration
	logger  *slog.Logger

	// Pending request table. Caller goroutines insert and remove entries;
	// the receive loop resolves them. Waiters block on their buffered
	// channel, never while holding the lock.
	pendingMu sync.Mutex
	pending   map[string]chan protocol.Response
}

// Dial connects to the box's command port and returns a running Remote.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Remote, error) {
	if logger == nil {
		logger = slog.Default()
	}

	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	r := &Remote{
		timeout: cfg.Timeout,
		logger:  logger,
		pending: make(map[string]chan protocol.Response),
	}

	clientCfg := connection.DefaultClientConfig()
	clientCfg.URL = fmt.Sprintf("ws://%s:%d", cfg.Host, port)

	r.client = connection.NewClient(clientCfg, r, logger.With("conn", "remote"))
	if err := r.client.Connect(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

// Close closes the command connection. Commands still in flight are not
// resolved: each observes its own timeout expiry, or blocks indefinitely
// when no timeout is configured.
func (r *Remote) Close() error {
	return r.client.Close()
}

// PressButton sends a button press and waits for the box to acknowledge it.
// The name is validated against the recognized button set before any I/O.
func (r *Remote) PressButton(name string) error {
	if !ValidButton(name) {
		return &InvalidButtonError{Button: name}
	}

	_, err := r.sendAndAwait(protocol.Command{
		Action: protocol.ActionButtonEvent,
		Params: map[string]any{"key": name},
	})
	return err
}

// Versions returns the remote-control version and the box type, name and
// mac address, as reported by the box.
func (r *Remote) Versions() (map[string]any, error) {
	resp, err := r.sendAndAwait(protocol.Command{Action: protocol.ActionGetVersions})
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("decode versions data: %w", err)
	}
	return data, nil
}

// IsPowerOn reports whether the box is currently powered on.
func (r *Remote) IsPowerOn() (bool, error) {
	resp, err := r.sendAndAwait(protocol.Command{Action: protocol.ActionGetStatus})
	if err != nil {
		return false, err
	}

	var data struct {
		Power string `json:"power"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return false, fmt.Errorf("decode status data: %w", err)
	}
	return data.Power == protocol.PowerOn, nil
}

// sendAndAwait attaches a fresh requestId to cmd, transmits it, and blocks
// until the correlated response arrives or the timeout elapses. The pending
// entry is removed on every path before returning.
func (r *Remote) sendAndAwait(cmd protocol.Command) (protocol.Response, error) {
	cmd.RequestID = uuid.NewString()

	// Register before transmitting so a response can never race past
	// an empty table.
	respCh := make(chan protocol.Response, 1)
	r.pendingMu.Lock()
	r.pending[cmd.RequestID] = respCh
	r.pendingMu.Unlock()

	defer func() {
		r.pendingMu.Lock()
		delete(r.pending, cmd.RequestID)
		r.pendingMu.Unlock()
	}()

	data, err := json.Marshal(cmd)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("marshal command: %w", err)
	}
	if err := r.client.Send(data); err != nil {
		return protocol.Response{}, err
	}

	resp, ok := r.await(respCh)
	if !ok {
		return protocol.Response{}, &TimeoutError{Payload: cmd}
	}

	if resp.Code != protocol.ResponseCodeOK {
		return protocol.Response{}, &ResponseError{Payload: cmd, Response: resp}
	}

	return resp, nil
}

// await blocks on the response channel, honoring the configured timeout.
// A zero timeout waits indefinitely.
func (r *Remote) await(respCh <-chan protocol.Response) (protocol.Response, bool) {
	if r.timeout == 0 {
		return <-respCh, true
	}

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case resp := <-respCh:
		return resp, true
	case <-timer.C:
		return protocol.Response{}, false
	}
}

// HandleInbound resolves correlated responses against the pending table.
// Invoked from the connection's receive loop, never from a caller goroutine.
func (r *Remote) HandleInbound(msg protocol.Inbound) {
	if msg.Kind != protocol.KindResponse {
		r.logger.Warn("unhandled message", "kind", msg.Kind, "payload", string(msg.Raw))
		return
	}

	r.pendingMu.Lock()
	respCh, ok := r.pending[msg.Response.RequestID]
	if ok {
		delete(r.pending, msg.Response.RequestID)
	}
	r.pendingMu.Unlock()

	if !ok {
		// Late timeout, stale response, or protocol anomaly. Harmless.
		r.logger.Warn("no pending request for response",
			"request_id", msg.Response.RequestID,
			"code", msg.Response.Code,
		)
		return
	}

	// Buffered channel, exactly one waiter: never blocks.
	respCh <- msg.Response
}

// pendingCount reports the number of in-flight requests.
func (r *Remote) pendingCount() int {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	return len(r.pending)
}
