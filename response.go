package cellremote

import "time"

// Kind identifies which flow produced a [Response].
type Kind string

const (
	// KindOnline is a robot listing fetch.
	KindOnline Kind = "online"

	// KindCommand is a command sent to a robot.
	KindCommand Kind = "command"
)

// Response describes one completed request to the robot server.
//
// Responses are for observation only; the display has already been updated
// (or deliberately left alone) by the time a Response is delivered.
type Response struct {
	// Kind is the flow that issued the request.
	Kind Kind

	// RequestID is the correlation ID of a command. Empty for listing fetches.
	RequestID string

	// URL is the request URL as sent.
	URL string

	// Robot and Message are the command arguments. Empty for listing fetches.
	Robot   string
	Message string

	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int

	// Body is a copy of the raw response body.
	Body []byte

	// Latency is the request duration.
	Latency time.Duration

	// CompletedAt is when the request finished.
	CompletedAt time.Time

	// Error is set on transport or read failure. A non-200 status is not an
	// error; check Rendered.
	Error error

	// Rendered reports whether the body reached the display.
	Rendered bool
}
