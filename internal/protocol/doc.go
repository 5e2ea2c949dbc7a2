// Package protocol defines the wire format spoken by the set-top box.
//
// The box speaks JSON text frames over the lws-bidirectional-protocol
// WebSocket sub-protocol:
//   - Outbound commands carry an action, optional params, and a requestId
//   - Correlated responses echo the requestId with a remoteResponseCode
//   - Status pushes carry data.status and no requestId
package protocol
