package cellremote

import (
	"errors"
	"log/slog"
	"time"
)

// remoteConfig holds mutable state during Remote construction.
type remoteConfig struct {
	title             string
	robotServer       *RobotServer
	pollingInterval   time.Duration
	port              int
	logger            *slog.Logger
	responseCallbacks []func(Response)
	tokens            func() float64
}

// Option configures a [Remote] instance during construction.
//
// Options return an error if validation fails.
//
// Built-in options: [WithRobotServer], [WithPollingInterval], [WithPort],
// [WithLogger], [WithTitle], [WithResponseCallback], [WithTokenSource].
type Option func(*remoteConfig) error

// WithRobotServer sets the robot server to poll and send commands to.
// Required; calling it again replaces the previous server.
//
// Example:
//
//	rs, _ := cellremote.NewRobotServer("http://localhost:8081")
//	remote, err := cellremote.New(cellremote.WithRobotServer(rs))
func WithRobotServer(rs RobotServer) Option {
	return func(cfg *remoteConfig) error {
		if rs.url == "" {
			return errors.New("robot server must be created with NewRobotServer")
		}
		cfg.robotServer = &rs
		return nil
	}
}

// WithPollingInterval sets how often the robot listing is fetched.
// Defaults to 10 seconds.
//
// A new fetch starts on every tick whether or not the previous one has
// answered.
//
// Returns an error if the duration is zero or negative.
func WithPollingInterval(d time.Duration) Option {
	return func(cfg *remoteConfig) error {
		if d <= 0 {
			return errors.New("polling interval must be positive")
		}
		cfg.pollingInterval = d
		return nil
	}
}

// WithPort sets the HTTP port for the dashboard server. Defaults to 8080.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *remoteConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	remote, err := cellremote.New(
//	    cellremote.WithRobotServer(rs),
//	    cellremote.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *remoteConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithTitle sets the dashboard title shown in the browser tab and header.
// Defaults to "Cellbot Remote".
func WithTitle(title string) Option {
	return func(cfg *remoteConfig) error {
		cfg.title = title
		return nil
	}
}

// WithResponseCallback registers a function called for every completed
// request to the robot server, listing fetches and commands alike, whether
// or not the response was rendered.
//
// Multiple callbacks run in registration order. Callbacks are serialised and
// must not block. Panics are recovered and logged.
//
// Example:
//
//	remote, err := cellremote.New(
//	    cellremote.WithRobotServer(rs),
//	    cellremote.WithResponseCallback(func(r cellremote.Response) {
//	        if r.Kind == cellremote.KindCommand && !r.Rendered {
//	            log.Printf("command to %s failed", r.Robot)
//	        }
//	    }),
//	)
//
// Nil callbacks are ignored.
func WithResponseCallback(cb func(Response)) Option {
	return func(cfg *remoteConfig) error {
		if cb == nil {
			return nil
		}
		cfg.responseCallbacks = append(cfg.responseCallbacks, cb)
		return nil
	}
}

// WithTokenSource overrides the generator for the sid query value. The
// default draws a uniform random float in [0,1).
//
// Returns an error if fn is nil.
func WithTokenSource(fn func() float64) Option {
	return func(cfg *remoteConfig) error {
		if fn == nil {
			return errors.New("token source cannot be nil")
		}
		cfg.tokens = fn
		return nil
	}
}
