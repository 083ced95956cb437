// Package transport is the HTTP client shared by the robot list poller and
// the command sender.
//
// Every call builds its own request and context; nothing about one request
// is visible to another, so overlapping requests cannot interfere.
package transport
