package remote

import (
	"fmt"
	"strings"

	"github.com/pmarean/stb8ctl/internal/protocol"
)

// InvalidButtonError is returned when a button name is outside the
// recognized set. Detected before any network I/O.
type InvalidButtonError struct {
	Button string
}

func (e *InvalidButtonError) Error() string {
	return fmt.Sprintf("invalid button %q, valid buttons are: %s",
		e.Button, strings.Join(Buttons, ", "))
}

// TimeoutError is returned when no matching response arrived within the
// configured timeout. Payload is the command that went unanswered.
type TimeoutError struct {
	Payload protocol.Command
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout waiting for response to %s (requestId %s)",
		e.Payload.Action, e.Payload.RequestID)
}

// ResponseError is returned when a matching response arrived but its
// remoteResponseCode was missing or not "OK".
type ResponseError struct {
	Payload  protocol.Command
	Response protocol.Response
}

func (e *ResponseError) Error() string {
	code := e.Response.Code
	if code == "" {
		code = "<missing>"
	}
	return fmt.Sprintf("box rejected %s (requestId %s): remoteResponseCode %s",
		e.Payload.Action, e.Payload.RequestID, code)
}
