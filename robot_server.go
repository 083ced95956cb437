package cellremote

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

// Paths on the robot server, relative to its base URL.
const (
	onlinePath = "robotsonline"
	sendPath   = "sendmsg"
)

// RobotServer describes the remote server that tracks robots and relays
// commands to them.
//
// RobotServer is immutable after creation via [NewRobotServer]. The server is
// expected to answer GET robotsonline and GET sendmsg relative to its base
// URL; both responses are treated as ready-to-display HTML.
type RobotServer struct {
	url     string
	headers map[string]string
	timeout time.Duration
}

// URL returns the base URL as given to [NewRobotServer].
func (s RobotServer) URL() string {
	return s.url
}

// Headers returns a copy of the custom HTTP headers sent with every request.
// Returns nil if none are set.
func (s RobotServer) Headers() map[string]string {
	return copyMap(s.headers)
}

// Timeout returns the per-request timeout. Defaults to 10 seconds.
func (s RobotServer) Timeout() time.Duration {
	return s.timeout
}

// OnlineURL returns the URL of the robot listing.
func (s RobotServer) OnlineURL() string {
	return s.join(onlinePath)
}

// SendURL returns the URL commands are sent to, without a query.
func (s RobotServer) SendURL() string {
	return s.join(sendPath)
}

func (s RobotServer) join(path string) string {
	return strings.TrimSuffix(s.url, "/") + "/" + path
}

// NewRobotServer creates a [RobotServer] for the given base URL.
//
// The rawURL parameter must be an http:// or https:// URL without a query or
// fragment. A path prefix is allowed, e.g. "https://bots.example.com/remote".
//
// Example:
//
//	rs, err := cellremote.NewRobotServer("http://localhost:8081",
//	    cellremote.WithTimeout(5 * time.Second),
//	)
func NewRobotServer(rawURL string, opts ...RobotServerOption) (RobotServer, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return RobotServer{}, errors.New("invalid URL: " + err.Error())
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return RobotServer{}, errors.New("URL must have a scheme (http:// or https://)")
	}
	if parsedURL.Host == "" {
		return RobotServer{}, errors.New("URL must have a host")
	}
	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return RobotServer{}, errors.New("URL must not contain a query or fragment")
	}

	cfg := &robotServerConfig{
		headers: make(map[string]string),
		timeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return RobotServer{}, err
		}
	}

	return RobotServer{
		url:     rawURL,
		headers: cfg.headers,
		timeout: cfg.timeout,
	}, nil
}

// copyMap returns a shallow copy of the map.
func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
