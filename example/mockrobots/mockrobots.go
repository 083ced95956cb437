// Package mockrobots is an in-process robot server for demos and tests.
//
// It answers the two requests a remote makes:
//
//	GET /robotsonline                        HTML table of online robots
//	GET /sendmsg?msg=..&botname=..&sid=..    acknowledgement, 404 if the robot is offline
//
// The listing includes buttons that call the dashboard's sendCommand.
package mockrobots

import (
	"fmt"
	"html"
	"log/slog"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// Commands offered as buttons next to each robot.
var Commands = []string{"forward", "back", "left", "right", "stop"}

// Server is a mock robot server. The zero value is not usable; call [New].
type Server struct {
	mu     sync.Mutex
	robots map[string]bool
	logger *slog.Logger

	// latency returns the artificial delay added to each request.
	latency func() time.Duration
}

// New creates a server with the given robots, all online.
func New(logger *slog.Logger, names ...string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	robots := make(map[string]bool, len(names))
	for _, n := range names {
		robots[n] = true
	}
	return &Server{
		robots:  robots,
		logger:  logger,
		latency: func() time.Duration { return 0 },
	}
}

// WithRandomLatency adds a random 50-200ms delay to every request.
func (s *Server) WithRandomLatency() *Server {
	s.latency = func() time.Duration {
		return time.Duration(50+rand.Intn(150)) * time.Millisecond
	}
	return s
}

// SetOnline marks a robot online or offline, adding it if unknown.
func (s *Server) SetOnline(name string, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.robots[name] = online
}

// Toggle flips a random robot between online and offline.
func (s *Server) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.robots) == 0 {
		return
	}
	names := s.namesLocked(false)
	name := names[rand.Intn(len(names))]
	s.robots[name] = !s.robots[name]
	s.logger.Info("robot toggled", "robot", name, "online", s.robots[name])
}

// Online returns the names of online robots, sorted.
func (s *Server) Online() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.namesLocked(true)
}

func (s *Server) namesLocked(onlineOnly bool) []string {
	names := make([]string, 0, len(s.robots))
	for n, on := range s.robots {
		if on || !onlineOnly {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Handler returns the HTTP handler for the robot server endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/robotsonline", s.handleOnline)
	mux.HandleFunc("/sendmsg", s.handleSend)
	return mux
}

func (s *Server) handleOnline(w http.ResponseWriter, r *http.Request) {
	time.Sleep(s.latency())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, RenderTable(s.Online()))
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	time.Sleep(s.latency())

	q := r.URL.Query()
	msg, robot := q.Get("msg"), q.Get("botname")

	s.mu.Lock()
	online := s.robots[robot]
	s.mu.Unlock()

	if !online {
		s.logger.Warn("command for offline robot", "robot", robot, "msg", msg)
		http.Error(w, "robot not online", http.StatusNotFound)
		return
	}

	s.logger.Info("command received", "robot", robot, "msg", msg, "sid", q.Get("sid"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w, "%s: <b>%s</b> done", html.EscapeString(robot), html.EscapeString(msg))
}

// RenderTable renders the online listing with one button per command.
func RenderTable(names []string) string {
	if len(names) == 0 {
		return "<p>No robots online</p>"
	}

	var b strings.Builder
	b.WriteString("<table id='onlinebots'>")
	for _, n := range names {
		name := html.EscapeString(n)
		b.WriteString("<tr><td>")
		b.WriteString(name)
		b.WriteString("</td><td>")
		for _, c := range Commands {
			fmt.Fprintf(&b, `<button onclick="sendCommand('%s','%s')">%s</button>`, c, jsString(n), c)
		}
		b.WriteString("</td></tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

// jsString escapes a value for a single-quoted JS string inside an HTML
// attribute.
func jsString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return html.EscapeString(r.Replace(s))
}
