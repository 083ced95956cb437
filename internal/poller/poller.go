package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jpalmerr/cellremote/internal/display"
	"github.com/jpalmerr/cellremote/internal/transport"
)

// resultsBuffer bounds how far fetch completions may run ahead of the consumer.
const resultsBuffer = 16

// Target describes the robot listing endpoint.
type Target struct {
	// URL is the full robotsonline URL.
	URL string

	// Headers are sent with every fetch.
	Headers map[string]string

	// Timeout is the per-fetch timeout. Zero means no timeout beyond the context.
	Timeout time.Duration
}

// Result holds the outcome of one fetch.
type Result struct {
	// URL is the URL that was fetched.
	URL string

	// Body is the raw response body.
	Body []byte

	// StatusCode is the HTTP status, zero on transport failure.
	StatusCode int

	// Latency is the request duration.
	Latency time.Duration

	// CheckedAt is when the fetch completed.
	CheckedAt time.Time

	// Error is set on transport or read failure.
	Error error

	// Rendered reports whether the body was written to the display.
	Rendered bool
}

// Poller fetches the robot listing on a fixed interval and replaces the
// [display.RegionOnline] region with every 200 response body.
//
// Failures leave the region untouched. Every completed fetch, failed or not,
// is also emitted on [Poller.Results].
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Poller struct {
	target   Target
	interval time.Duration
	client   *transport.Client
	store    display.Store
	results  chan Result
	logger   *slog.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu        sync.Mutex
	started   bool
	stopped   bool
	closeOnce sync.Once

	// newTicker is swapped in tests to drive ticks by hand.
	newTicker func(d time.Duration) (<-chan time.Time, func())
}

// NewPoller creates a [Poller]. It does nothing until [Poller.Start].
func NewPoller(target Target, interval time.Duration, store display.Store, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		target:    target,
		interval:  interval,
		client:    transport.NewClient(),
		store:     store,
		results:   make(chan Result, resultsBuffer),
		logger:    logger,
		newTicker: realTicker,
	}
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Results returns the channel of completed fetches. It is closed once the
// poller has stopped and every in-flight fetch has finished. Consumers
// should drain it until closed.
func (p *Poller) Results() <-chan Result {
	return p.results
}

// Start fetches immediately and then once per interval until [Poller.Stop]
// is called or ctx is cancelled. Start is non-blocking and idempotent; if
// Stop was called first, Start is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		var inflight sync.WaitGroup
		defer func() {
			inflight.Wait()
			p.closeOnce.Do(func() { close(p.results) })
		}()

		launch := func() {
			inflight.Add(1)
			go func() {
				defer inflight.Done()
				result := p.Fetch(pollCtx)
				select {
				case p.results <- result:
				case <-pollCtx.Done():
				}
			}()
		}

		launch()

		ticks, stopTicker := p.newTicker(p.interval)
		defer stopTicker()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticks:
				launch()
			}
		}
	}()
}

// Stop cancels the loop and in-flight fetches, waits for them to finish and
// closes the results channel. Safe to call more than once, or before Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		if p.cancel != nil {
			p.cancel()
		}
	}
	p.mu.Unlock()

	p.wg.Wait()

	if p.client != nil {
		p.client.Close()
	}

	// ensure channel is closed even if Start() was never called
	p.closeOnce.Do(func() { close(p.results) })
}

// Fetch performs a single listing request and, on a 200 response, replaces
// the robotsonline region with the raw body. It can be used without Start.
func (p *Poller) Fetch(ctx context.Context) Result {
	resp := p.client.Get(ctx, p.target.URL, p.target.Headers, p.target.Timeout)

	result := Result{
		URL:        resp.URL,
		Body:       resp.Body,
		StatusCode: resp.StatusCode,
		Latency:    resp.Latency,
		CheckedAt:  time.Now(),
		Error:      resp.Error,
	}

	// written here, at completion, so the last response to land wins
	if resp.OK() && ctx.Err() == nil {
		p.store.Replace(display.RegionOnline, string(resp.Body))
		result.Rendered = true
		p.logger.Debug("robot listing rendered", "bytes", len(resp.Body))
	}

	return result
}
