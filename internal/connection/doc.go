// Package connection implements the Connection Manager.
//
// The Connection Manager:
//   - Owns a single WebSocket connection to the box
//   - Negotiates the lws-bidirectional-protocol sub-protocol
//   - Runs one background receive loop per connection
//   - Decodes inbound frames and dispatches them, in delivery order,
//     to the handler registered at construction
package connection
