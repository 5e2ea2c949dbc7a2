// Package status implements the Status Subscriber.
//
// The Status Subscriber:
//   - Owns the status connection (default port 7684)
//   - Relays each power-status push to the callback supplied at
//     construction, synchronously from the receive loop
//   - Carries no correlation or timeout logic
package status
