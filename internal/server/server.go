package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jpalmerr/cellremote/internal/display"
)

const (
	// sseWriteTimeout is the maximum time allowed for a single SSE write operation.
	// Must be <= shutdown timeout to ensure clean shutdown.
	sseWriteTimeout = 5 * time.Second

	// defaultTitle is used when no custom title is configured.
	defaultTitle = "Cellbot Remote"

	// titlePlaceholder is the marker in HTML that gets replaced with the actual title.
	titlePlaceholder = "{{.Title}}"
)

// CommandFunc dispatches a command to a robot. It must not block on the
// robot server's reply.
type CommandFunc func(ctx context.Context, message, robot string)

// Server handles HTTP requests for the console page and its API.
//
// Server provides four endpoints:
//   - GET /: Serves the embedded console page
//   - GET /api/regions: Returns all display regions as JSON
//   - GET /api/sse: Server-Sent Events stream of region updates
//   - POST /api/send: Dispatches a command (form fields msg, botname)
type Server struct {
	store      display.Store
	port       int
	httpServer *http.Server
	assets     fs.FS
	title      string
	send       CommandFunc
	logger     *slog.Logger

	// baseCtx outlives individual requests; commands run under it.
	baseCtx context.Context

	// done is closed once shutdown has finished.
	done chan struct{}
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - st: Display store backing the page regions
//   - port: TCP port to listen on
//   - assets: Embedded filesystem containing the console page (may be nil)
//   - title: Page title (defaults to "Cellbot Remote" if empty)
//   - send: Command dispatcher for /api/send (may be nil to disable sending)
//   - logger: Logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(st display.Store, port int, assets fs.FS, title string, send CommandFunc, logger *slog.Logger) *Server {
	return &Server{
		store:  st,
		port:   port,
		assets: assets,
		title:  title,
		send:   send,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Done returns a channel that is closed after a started server has shut
// down and its handlers have returned, so no further command dispatches
// can happen. It is never closed if Start failed or was not called.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Handler returns the request router. Start uses it; tests may mount it
// on an httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/regions", s.handleRegions)
	mux.HandleFunc("/api/sse", s.handleSSE)
	mux.HandleFunc("/api/send", s.handleSend)

	if s.assets != nil {
		mux.HandleFunc("/", s.handleDashboard)
	}

	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns once the listener is bound. The server
// runs until ctx is cancelled, then shuts down with a 5-second timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.baseCtx = ctx
	s.httpServer = &http.Server{
		Handler: s.Handler(),
		// request contexts derive from ctx so SSE handlers end on shutdown
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		defer close(s.done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// handleDashboard serves the console page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if s.assets == nil {
		http.Error(w, "Console page not found", http.StatusInternalServerError)
		return
	}

	content, err := fs.ReadFile(s.assets, "assets/index.html")
	if err != nil {
		http.Error(w, "Console page not found", http.StatusInternalServerError)
		return
	}

	// title is operator-supplied; region content is not escaped, the title is
	title := s.title
	if title == "" {
		title = defaultTitle
	}
	rendered := strings.ReplaceAll(string(content), titlePlaceholder, html.EscapeString(title))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = w.Write([]byte(rendered)); err != nil {
		s.logger.Error("failed to write console response", "error", err)
	}
}

// handleRegions returns all display regions as JSON.
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(s.store.GetAll()); err != nil {
		s.logger.Error("failed to encode regions response", "error", err)
	}
}

// handleSend accepts a command from the console page and dispatches it.
// The response only acknowledges the hand-off; the outcome shows up in the
// robotresponses region.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.send == nil {
		http.Error(w, "Sending is disabled", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	// the dispatch outlives this request, so it must not use r.Context()
	ctx := s.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	s.send(ctx, r.PostForm.Get("msg"), r.PostForm.Get("botname"))

	w.WriteHeader(http.StatusAccepted)
}

// handleSSE streams region snapshots via Server-Sent Events.
//
// Writes carry a deadline so a slow or vanished client cannot pin the
// handler past shutdown.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	rc := http.NewResponseController(w)

	// track if write deadlines are supported (may not be for some ResponseWriter impls)
	deadlinesSupported := true

	writeAndFlush := func(data []byte) error {
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}

		return rc.Flush()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// subscribe before the snapshot so no write falls between the two
	ch := s.store.Subscribe()
	defer s.store.Unsubscribe(ch)

	for _, region := range s.store.GetAll() {
		data, err := json.Marshal(region)
		if err != nil {
			continue
		}
		if err := writeAndFlush(data); err != nil {
			return
		}
	}

	for {
		select {
		case region, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(region)
			if err != nil {
				continue
			}
			if err := writeAndFlush(data); err != nil {
				return
			}

		case <-r.Context().Done():
			// fires on client disconnect and, via BaseContext, on shutdown
			return
		}
	}
}
