// Package server provides the HTTP server for the cellremote console page.
//
// This package handles all HTTP concerns of the local console:
//
//   - Console page: Serves the embedded HTML page at "/"
//   - REST API: JSON snapshot of the display regions at "/api/regions"
//   - Server-Sent Events: Live region updates at "/api/sse"
//   - Commands: "POST /api/send" hands a command to the sender
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
