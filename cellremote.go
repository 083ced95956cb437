package cellremote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/cellremote/dashboard"
	"github.com/jpalmerr/cellremote/internal/command"
	"github.com/jpalmerr/cellremote/internal/display"
	"github.com/jpalmerr/cellremote/internal/poller"
	"github.com/jpalmerr/cellremote/internal/server"
)

const (
	defaultPollingInterval = 10 * time.Second
	defaultPort            = 8080
	defaultTitle           = "Cellbot Remote"
)

// Remote polls a robot server for online robots, sends commands to them and
// serves both display regions on a live dashboard.
//
// The typical lifecycle is:
//
//	rs, _ := cellremote.NewRobotServer("http://localhost:8081")
//	remote, err := cellremote.New(cellremote.WithRobotServer(rs))
//	if err != nil {
//	    slog.Error("failed to create remote", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	remote.Start(ctx) // blocks until context cancelled
//
// [Remote.SendCommand] and [Remote.FetchOnlineRobots] may be used with or
// without Start.
type Remote struct {
	title             string
	robotServer       RobotServer
	pollingInterval   time.Duration
	port              int
	logger            *slog.Logger
	responseCallbacks []func(Response)

	store   *display.MemoryStore
	sender  *command.Sender
	fetcher *poller.Poller

	// serialises callback invocation across the poll consumer and sends
	callbackMu sync.Mutex

	mu      sync.Mutex
	started bool
}

// New creates a [Remote] with the given options.
//
// [WithRobotServer] is required. Defaults:
//   - Polling interval: 10 seconds
//   - Port: 8080
//   - Title: "Cellbot Remote"
func New(opts ...Option) (*Remote, error) {
	cfg := &remoteConfig{
		title:           defaultTitle,
		pollingInterval: defaultPollingInterval,
		port:            defaultPort,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.robotServer == nil {
		return nil, errors.New("a robot server is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	rs := *cfg.robotServer
	st := display.NewMemoryStore()

	sender := command.NewSender(command.Target{
		URL:     rs.SendURL(),
		Headers: rs.Headers(),
		Timeout: rs.timeout,
	}, st, cfg.tokens, logger)

	return &Remote{
		title:             cfg.title,
		robotServer:       rs,
		pollingInterval:   cfg.pollingInterval,
		port:              cfg.port,
		logger:            logger,
		responseCallbacks: cfg.responseCallbacks,
		store:             st,
		sender:            sender,
		fetcher:           poller.NewPoller(rs.pollerTarget(), cfg.pollingInterval, st, logger),
	}, nil
}

// Start begins polling the robot listing and serving the dashboard.
//
// Start blocks until ctx is cancelled. The listing is fetched immediately,
// then once per polling interval. The dashboard is available at
// http://localhost:<port>; commands posted from it go through
// [Remote.SendCommand].
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server
// fails to start or if Start has already been called.
func (r *Remote) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return errors.New("remote already started")
	}
	r.started = true
	r.mu.Unlock()

	r.logger.Info("cellremote starting", "robot_server", r.robotServer.url)
	r.logger.Info("polling configured", "interval", r.pollingInterval.String())
	r.logger.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%d", r.port))

	if ctx.Err() != nil {
		return nil
	}

	listing := r.fetcher
	listing.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for result := range listing.Results() {
			r.notify(onlineResponse(result))

			logAttrs := []any{
				"url", result.URL,
				"status_code", result.StatusCode,
				"latency_ms", result.Latency.Milliseconds(),
			}
			switch {
			case result.Error != nil:
				r.logger.Warn("robot listing failed", append(logAttrs, "error", result.Error.Error())...)
			case !result.Rendered:
				r.logger.Warn("robot listing rejected", logAttrs...)
			default:
				r.logger.Debug("robot listing fetched", logAttrs...)
			}
		}
	}()

	stopPolling := func() {
		listing.Stop() // closes results channel
		wg.Wait()
	}

	send := func(ctx context.Context, message, robot string) {
		r.SendCommand(ctx, message, robot)
	}

	httpServer := server.NewServer(r.store, r.port, dashboard.Assets, r.title, send, r.logger)
	if err := httpServer.Start(ctx); err != nil {
		stopPolling()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	<-ctx.Done()
	stopPolling()
	// no handler can dispatch a command once the server is down
	<-httpServer.Done()
	r.sender.Close()
	r.logger.Info("cellremote stopped")
	return nil
}

// SendCommand writes the announce line to the log, then sends message to
// robot in the background.
//
// The returned channel yields the single [Response] once the robot server
// has answered (or the request failed) and is then closed. Ignoring it is
// fine. Response callbacks run before the Response is delivered.
func (r *Remote) SendCommand(ctx context.Context, message, robot string) <-chan Response {
	results := r.sender.Send(ctx, message, robot)

	out := make(chan Response, 1)
	go func() {
		defer close(out)
		resp := commandResponse(<-results)
		r.notify(resp)
		out <- resp
	}()
	return out
}

// Close waits for in-flight commands and releases idle connections. Use it
// when the Remote served one-shot calls without Start; after Close, Start
// no longer polls.
func (r *Remote) Close() {
	r.sender.Close()
	r.fetcher.Stop()
}

// FetchOnlineRobots performs a single listing fetch, rendering it on success.
func (r *Remote) FetchOnlineRobots(ctx context.Context) Response {
	resp := onlineResponse(r.fetcher.Fetch(ctx))
	r.notify(resp)
	return resp
}

// Online returns the current content of the robotsonline region.
func (r *Remote) Online() string {
	return r.store.Get(display.RegionOnline)
}

// Log returns the current content of the robotresponses region, newest
// entry first.
func (r *Remote) Log() string {
	return r.store.Get(display.RegionResponses)
}

// RobotServer returns the configured robot server.
func (r *Remote) RobotServer() RobotServer {
	return r.robotServer
}

// Port returns the configured HTTP port for the dashboard server.
func (r *Remote) Port() int {
	return r.port
}

// PollingInterval returns the configured interval between listing fetches.
func (r *Remote) PollingInterval() time.Duration {
	return r.pollingInterval
}

// Title returns the dashboard title.
func (r *Remote) Title() string {
	return r.title
}

func (r *Remote) notify(resp Response) {
	if len(r.responseCallbacks) == 0 {
		return
	}
	r.callbackMu.Lock()
	defer r.callbackMu.Unlock()
	for _, cb := range r.responseCallbacks {
		invokeCallbackSafe(cb, resp, r.logger)
	}
}

func (s RobotServer) pollerTarget() poller.Target {
	return poller.Target{
		URL:     s.OnlineURL(),
		Headers: copyMap(s.headers),
		Timeout: s.timeout,
	}
}

func onlineResponse(pr poller.Result) Response {
	return Response{
		Kind:        KindOnline,
		URL:         pr.URL,
		StatusCode:  pr.StatusCode,
		Body:        copyBytes(pr.Body),
		Latency:     pr.Latency,
		CompletedAt: pr.CheckedAt,
		Error:       pr.Error,
		Rendered:    pr.Rendered,
	}
}

func commandResponse(cr command.Result) Response {
	return Response{
		Kind:        KindCommand,
		RequestID:   cr.RequestID,
		URL:         cr.URL,
		Robot:       cr.Robot,
		Message:     cr.Message,
		StatusCode:  cr.StatusCode,
		Body:        copyBytes(cr.Body),
		Latency:     cr.Latency,
		CompletedAt: cr.CompletedAt,
		Error:       cr.Error,
		Rendered:    cr.Rendered,
	}
}

// copyBytes returns a copy of the byte slice, or nil if input is nil.
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// invokeCallbackSafe calls a response callback with panic recovery.
// Panics are logged with a correlation ID and do not propagate.
func invokeCallbackSafe(cb func(Response), resp Response, logger *slog.Logger) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("response callback panicked",
				"panic", rec,
				"correlation_id", uuid.NewString(),
				"kind", string(resp.Kind),
				"url", resp.URL,
			)
		}
	}()
	cb(resp)
}
