// Package remote implements the Command Client.
//
// The Command Client:
//   - Owns the command connection (default port 7682)
//   - Correlates responses to in-flight commands by requestId
//   - Exposes the button press and query API
//   - Blocks each caller on its own one-shot channel until the matching
//     response arrives or the configured timeout elapses
package remote
