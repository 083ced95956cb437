package command

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/cellremote/internal/display"
	"github.com/jpalmerr/cellremote/internal/transport"
)

// lineBreak separates log entries.
const lineBreak = "<br>"

// TokenSource produces correlation tokens for the sid query value.
type TokenSource func() float64

// Target describes the command endpoint.
type Target struct {
	// URL is the full sendmsg URL, without a query.
	URL string

	// Headers are sent with every command.
	Headers map[string]string

	// Timeout is the per-command timeout. Zero means no timeout beyond the context.
	Timeout time.Duration
}

// Result holds the outcome of one command.
type Result struct {
	// RequestID identifies the attempt in logs.
	RequestID string

	// Robot and Message are the values as given to Send.
	Robot   string
	Message string

	// URL is the request URL as built by [BuildURL].
	URL string

	// Body is the raw response body.
	Body []byte

	// StatusCode is the HTTP status, zero on transport failure.
	StatusCode int

	// Latency is the request duration.
	Latency time.Duration

	// CompletedAt is when the request finished.
	CompletedAt time.Time

	// Error is set on request construction, transport or read failure.
	Error error

	// Rendered reports whether the body was added to the log.
	Rendered bool
}

// Sender issues commands and writes their trace into the log region.
//
// Each call to [Sender.Send] owns its request, goroutine and result channel,
// so overlapping sends never share state.
type Sender struct {
	target Target
	client *transport.Client
	store  display.Store
	tokens TokenSource
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewSender creates a [Sender]. A nil tokens uses a uniform random float in
// [0,1); a nil logger uses slog.Default().
func NewSender(target Target, store display.Store, tokens TokenSource, logger *slog.Logger) *Sender {
	if tokens == nil {
		tokens = rand.Float64
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		target: target,
		client: transport.NewClient(),
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// AnnounceLine is the log entry written before a command is dispatched.
func AnnounceLine(robot, message string) string {
	return "About to send to " + robot + ": " + message + lineBreak
}

// Send records the attempt in the log, then dispatches the request in the
// background and returns immediately.
//
// The returned channel receives exactly one [Result] and is then closed.
// Callers may ignore it. Failures never surface as errors or panics; they
// are only visible on the Result.
func (s *Sender) Send(ctx context.Context, message, robot string) <-chan Result {
	requestID := uuid.NewString()
	url := BuildURL(s.target.URL, message, robot, s.tokens())

	s.store.Prepend(display.RegionResponses, AnnounceLine(robot, message))

	out := make(chan Result, 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(out)

		resp := s.client.Get(ctx, url, s.target.Headers, s.target.Timeout)

		result := Result{
			RequestID:   requestID,
			Robot:       robot,
			Message:     message,
			URL:         url,
			Body:        resp.Body,
			StatusCode:  resp.StatusCode,
			Latency:     resp.Latency,
			CompletedAt: time.Now(),
			Error:       resp.Error,
		}

		if resp.OK() {
			s.store.Prepend(display.RegionResponses, string(resp.Body)+lineBreak)
			result.Rendered = true
		}

		logAttrs := []any{
			"request_id", requestID,
			"robot", robot,
			"status_code", resp.StatusCode,
			"latency_ms", resp.Latency.Milliseconds(),
		}
		switch {
		case resp.Error != nil:
			s.logger.Warn("command failed", append(logAttrs, "error", resp.Error.Error())...)
		case !result.Rendered:
			s.logger.Warn("command rejected", logAttrs...)
		default:
			s.logger.Debug("command completed", logAttrs...)
		}

		out <- result
	}()

	return out
}

// Wait blocks until every dispatched command has completed.
func (s *Sender) Wait() {
	s.wg.Wait()
}

// Close waits for in-flight commands and releases idle connections.
func (s *Sender) Close() {
	s.wg.Wait()
	s.client.Close()
}
