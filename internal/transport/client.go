package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// ErrBodyTooLarge is set on a [Response] whose body exceeds 1MB.
var ErrBodyTooLarge = errors.New("response body exceeds 1MB")

// connection pooling limits; the robot server is a single host
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// Response holds the result of a GET made by [Client].
type Response struct {
	// URL is the request URL as sent.
	URL string

	// Body contains the HTTP response body. Bodies over 1MB are not kept.
	Body []byte

	// StatusCode is the HTTP status code.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error contains any error that occurred during the request.
	// nil means a response was read in full, whatever its status. A body
	// larger than 1MB is an error.
	Error error
}

// OK reports whether the request completed with status 200. This is the
// only outcome the console renders; everything else is dropped silently.
func (r Response) OK() bool {
	return r.Error == nil && r.StatusCode == http.StatusOK
}

// Client is an HTTP client wrapper for robot server requests.
//
// Timeouts are applied per request via context rather than on the
// underlying http.Client.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a [Client] with pooled connections.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// Get performs a GET request and returns a structured [Response].
//
// Get always returns a Response; errors are captured in the Error field
// rather than returned separately. A zero timeout means no deadline beyond ctx.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string, timeout time.Duration) Response {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			URL:     url,
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			URL:     url,
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	// one byte past the limit tells a full body from a cut one
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize+1))
	if err != nil {
		return Response{
			URL:        url,
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      fmt.Errorf("failed to read response body: %w", err),
		}
	}
	if len(body) > maxResponseBodySize {
		return Response{
			URL:        url,
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      ErrBodyTooLarge,
		}
	}

	return Response{
		URL:        url,
		Body:       body,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close releases idle connections. The client stays usable afterwards.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
