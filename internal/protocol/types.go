package protocol

import "encoding/json"

// Subprotocol is the WebSocket sub-protocol negotiated with the box.
const Subprotocol = "lws-bidirectional-protocol"

// Known command actions.
const (
	ActionButtonEvent = "buttonEvent"
	ActionGetVersions = "getVersions"
	ActionGetStatus   = "getStatus"
)

// ResponseCodeOK is the remoteResponseCode the box sends for accepted commands.
const ResponseCodeOK = "OK"

// PowerOn is the power/status literal reported by the box when it is on.
const PowerOn = "powerOn"

// Command is an outbound command to the box.
type Command struct {
	Action    string         `json:"action"`
	Params    map[string]any `json:"params,omitempty"`
	RequestID string         `json:"requestId"`
}

// Response is a correlated reply to a Command.
type Response struct {
	RequestID string          `json:"requestId"`
	Code      string          `json:"remoteResponseCode"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// StatusEvent is an unsolicited power-status push.
type StatusEvent struct {
	Status string // data.status, e.g. "powerOn"
}

// Kind discriminates the known inbound message shapes.
type Kind int

const (
	// KindUnknown is any frame that is neither a correlated response nor a
	// status push, including frames that fail to decode as JSON.
	KindUnknown Kind = iota

	// KindResponse is a reply carrying a requestId.
	KindResponse

	// KindStatus is a push carrying data.status and no requestId.
	KindStatus
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindResponse:
		return "response"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Inbound is a decoded inbound frame. Exactly one of Response and Status is
// meaningful, selected by Kind; Raw always holds the original frame bytes.
type Inbound struct {
	Kind     Kind
	Response Response
	Status   StatusEvent
	Raw      []byte
}
