package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pmarean/stb8ctl/internal/protocol"
)

// mockWSServer creates a test WebSocket server.
func mockWSServer(t *testing.T, handler func(*websocket.Conn)) *httptest.Server {
	upgrader := websocket.Upgrader{
		CheckOrigin:  func(r *http.Request) bool { return true },
		Subprotocols: []string{protocol.Subprotocol},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}
		defer conn.Close()
		handler(conn)
	}))

	return server
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func testClientConfig(server *httptest.Server) ClientConfig {
	cfg := DefaultClientConfig()
	cfg.URL = wsURL(server)
	return cfg
}

// collector records dispatched messages for inspection.
type collector struct {
	mu   sync.Mutex
	msgs []protocol.Inbound
}

func (c *collector) HandleInbound(msg protocol.Inbound) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *collector) snapshot() []protocol.Inbound {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]protocol.Inbound(nil), c.msgs...)
}

func TestClient_ConnectNegotiatesSubprotocol(t *testing.T) {
	var gotProtocols []string
	var mu sync.Mutex

	upgrader := websocket.Upgrader{
		CheckOrigin:  func(r *http.Request) bool { return true },
		Subprotocols: []string{protocol.Subprotocol},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotProtocols = websocket.Subprotocols(r)
		mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.ReadMessage()
	}))
	defer server.Close()

	cfg := testClientConfig(server)
	client := NewClient(cfg, HandlerFunc(func(protocol.Inbound) {}), nil)

	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("expected IsConnected to return true")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(gotProtocols) != 1 || gotProtocols[0] != protocol.Subprotocol {
		t.Errorf("offered subprotocols = %v, want [%s]", gotProtocols, protocol.Subprotocol)
	}
}

func TestClient_Send(t *testing.T) {
	var received []byte
	var mu sync.Mutex

	server := mockWSServer(t, func(conn *websocket.Conn) {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			mu.Lock()
			received = msg
			mu.Unlock()
		}
	})
	defer server.Close()

	client := NewClient(testClientConfig(server), &collector{}, nil)
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Close()

	testMsg := []byte(`{"action":"getStatus","requestId":"r1"}`)
	if err := client.Send(testMsg); err != nil {
		t.Errorf("Send failed: %v", err)
	}

	// Wait for message to be received
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if string(received) != string(testMsg) {
		t.Errorf("received %q, want %q", received, testMsg)
	}
}

func TestClient_DispatchesInDeliveryOrder(t *testing.T) {
	frames := []string{
		`{"requestId":"r1","remoteResponseCode":"OK"}`,
		`{"data":{"status":"powerOn"}}`,
		`{"something":"else"}`,
	}

	server := mockWSServer(t, func(conn *websocket.Conn) {
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		// Keep connection open
		conn.ReadMessage()
	})
	defer server.Close()

	h := &collector{}
	client := NewClient(testClientConfig(server), h, nil)
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Close()

	deadline := time.Now().Add(500 * time.Millisecond)
	var got []protocol.Inbound
	for time.Now().Before(deadline) {
		got = h.snapshot()
		if len(got) == len(frames) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if len(got) != len(frames) {
		t.Fatalf("dispatched %d messages, want %d", len(got), len(frames))
	}

	wantKinds := []protocol.Kind{protocol.KindResponse, protocol.KindStatus, protocol.KindUnknown}
	for i, want := range wantKinds {
		if got[i].Kind != want {
			t.Errorf("message %d: Kind = %v, want %v", i, got[i].Kind, want)
		}
		if string(got[i].Raw) != frames[i] {
			t.Errorf("message %d: Raw = %q, want %q", i, got[i].Raw, frames[i])
		}
	}
}

func TestClient_SendNotConnected(t *testing.T) {
	cfg := DefaultClientConfig()
	cfg.URL = "ws://localhost:12345"

	client := NewClient(cfg, &collector{}, nil)

	err := client.Send([]byte("test"))
	if err != ErrNotConnected {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestClient_DoubleClose(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})
	defer server.Close()

	client := NewClient(testClientConfig(server), &collector{}, nil)
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	// First close should succeed
	if err := client.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}

	// Second close should be no-op
	if err := client.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	if client.IsConnected() {
		t.Error("expected IsConnected to return false after Close")
	}
}

func TestClient_ConnectAfterClose(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})
	defer server.Close()

	client := NewClient(testClientConfig(server), &collector{}, nil)
	if err := client.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := client.Connect(context.Background()); err != ErrAlreadyClosed {
		t.Errorf("expected ErrAlreadyClosed, got %v", err)
	}
}

func TestClient_PeerCloseStopsDispatch(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"data":{"status":"powerOn"}}`))
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
	})
	defer server.Close()

	h := &collector{}
	client := NewClient(testClientConfig(server), h, nil)
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Close()

	// Give the receive loop time to observe the close frame
	time.Sleep(100 * time.Millisecond)

	if client.IsConnected() {
		t.Error("expected IsConnected to return false after peer close")
	}
	if got := h.snapshot(); len(got) != 1 {
		t.Errorf("dispatched %d messages, want 1", len(got))
	}
}
