package cellremote

import (
	"strings"
	"testing"
	"time"
)

func TestNewRobotServer(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "http", url: "http://localhost:8081"},
		{name: "https with path", url: "https://bots.example.com/remote/"},
		{name: "no scheme", url: "localhost:8081", wantErr: "scheme"},
		{name: "ftp scheme", url: "ftp://example.com", wantErr: "scheme"},
		{name: "no host", url: "http://", wantErr: "host"},
		{name: "query", url: "http://example.com/?a=b", wantErr: "query or fragment"},
		{name: "fragment", url: "http://example.com/#top", wantErr: "query or fragment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := NewRobotServer(tt.url)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("NewRobotServer(%q) error = %v, want containing %q", tt.url, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRobotServer(%q) error = %v", tt.url, err)
			}
			if rs.URL() != tt.url {
				t.Errorf("URL() = %q, want %q", rs.URL(), tt.url)
			}
		})
	}
}

func TestRobotServer_Paths(t *testing.T) {
	tests := []struct {
		base       string
		wantOnline string
		wantSend   string
	}{
		{"http://localhost:8081", "http://localhost:8081/robotsonline", "http://localhost:8081/sendmsg"},
		{"http://localhost:8081/", "http://localhost:8081/robotsonline", "http://localhost:8081/sendmsg"},
		{"https://example.com/remote", "https://example.com/remote/robotsonline", "https://example.com/remote/sendmsg"},
	}

	for _, tt := range tests {
		rs, err := NewRobotServer(tt.base)
		if err != nil {
			t.Fatalf("NewRobotServer(%q) error = %v", tt.base, err)
		}
		if got := rs.OnlineURL(); got != tt.wantOnline {
			t.Errorf("OnlineURL() = %q, want %q", got, tt.wantOnline)
		}
		if got := rs.SendURL(); got != tt.wantSend {
			t.Errorf("SendURL() = %q, want %q", got, tt.wantSend)
		}
	}
}

func TestRobotServer_Defaults(t *testing.T) {
	rs, err := NewRobotServer("http://localhost:8081")
	if err != nil {
		t.Fatalf("NewRobotServer() error = %v", err)
	}
	if rs.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", rs.Timeout())
	}
	if len(rs.Headers()) != 0 {
		t.Errorf("Headers() = %v, want empty", rs.Headers())
	}
}

func TestRobotServer_Options(t *testing.T) {
	rs, err := NewRobotServer("http://localhost:8081",
		WithTimeout(3*time.Second),
		WithHeaders("Authorization", "Bearer t", "X-Fleet", "north"),
	)
	if err != nil {
		t.Fatalf("NewRobotServer() error = %v", err)
	}
	if rs.Timeout() != 3*time.Second {
		t.Errorf("Timeout() = %v, want 3s", rs.Timeout())
	}
	h := rs.Headers()
	if h["Authorization"] != "Bearer t" || h["X-Fleet"] != "north" {
		t.Errorf("Headers() = %v", h)
	}

	// returned map is a copy
	h["Authorization"] = "changed"
	if rs.Headers()["Authorization"] != "Bearer t" {
		t.Error("Headers() returned a shared map")
	}
}

func TestRobotServer_InvalidOptions(t *testing.T) {
	if _, err := NewRobotServer("http://localhost:8081", WithTimeout(0)); err == nil {
		t.Error("WithTimeout(0) error = nil")
	}
	if _, err := NewRobotServer("http://localhost:8081", WithTimeout(-time.Second)); err == nil {
		t.Error("WithTimeout(-1s) error = nil")
	}
	if _, err := NewRobotServer("http://localhost:8081", WithHeaders("only-key")); err == nil {
		t.Error("WithHeaders(odd) error = nil")
	}
}
