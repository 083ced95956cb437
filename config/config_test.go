package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_MinimalConfig(t *testing.T) {
	yaml := `
server:
  url: http://localhost:8081
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.PollInterval.Duration() != 10*time.Second {
		t.Errorf("PollInterval = %v, want 10s", cfg.PollInterval.Duration())
	}
	if cfg.Server.Timeout != 0 {
		t.Errorf("Server.Timeout = %v, want unset", cfg.Server.Timeout.Duration())
	}
	if cfg.Title != "" {
		t.Errorf("Title = %q, want empty", cfg.Title)
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
title: Lab Fleet
port: 9090
poll_interval: 30s

server:
  url: https://bots.example.com/remote
  timeout: 5s
  headers:
    Authorization: Bearer token123
    X-Fleet: north
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Lab Fleet" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Lab Fleet")
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.PollInterval.Duration() != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval.Duration())
	}
	if cfg.Server.URL != "https://bots.example.com/remote" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Server.Timeout.Duration() != 5*time.Second {
		t.Errorf("Server.Timeout = %v, want 5s", cfg.Server.Timeout.Duration())
	}
	if cfg.Server.Headers["Authorization"] != "Bearer token123" || cfg.Server.Headers["X-Fleet"] != "north" {
		t.Errorf("Server.Headers = %v", cfg.Server.Headers)
	}
}

func TestParse_EnvVarSubstitution(t *testing.T) {
	t.Setenv("TEST_ROBOT_HOST", "bots.test.com")
	t.Setenv("TEST_ROBOT_TOKEN", "secret123")

	yaml := `
server:
  url: https://${TEST_ROBOT_HOST}/remote
  headers:
    Authorization: "Bearer ${TEST_ROBOT_TOKEN}"
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Server.URL != "https://bots.test.com/remote" {
		t.Errorf("URL = %q, want https://bots.test.com/remote", cfg.Server.URL)
	}
	if cfg.Server.Headers["Authorization"] != "Bearer secret123" {
		t.Errorf("Headers[Authorization] = %q, want 'Bearer secret123'", cfg.Server.Headers["Authorization"])
	}
}

func TestParse_EnvVarDefault(t *testing.T) {
	// CELLREMOTE_UNSET_VAR is expected to not exist in the environment
	yaml := `
server:
  url: http://${CELLREMOTE_UNSET_VAR:-localhost:8081}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Server.URL != "http://localhost:8081" {
		t.Errorf("URL = %q, want http://localhost:8081", cfg.Server.URL)
	}
}

func TestParse_EnvVarMissing(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "in url",
			yaml: `
server:
  url: http://${CELLREMOTE_MISSING_VAR}/
`,
		},
		{
			name: "in header",
			yaml: `
server:
  url: http://localhost:8081
  headers:
    Authorization: ${CELLREMOTE_MISSING_VAR}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error for missing env var, got nil")
			}
			if !strings.Contains(err.Error(), "CELLREMOTE_MISSING_VAR") {
				t.Errorf("error should mention CELLREMOTE_MISSING_VAR: %v", err)
			}
		})
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantErrLike string
	}{
		{
			name:        "no server",
			yaml:        `port: 8080`,
			wantErrLike: "server.url is required",
		},
		{
			name: "missing scheme",
			yaml: `
server:
  url: localhost
`,
			wantErrLike: "scheme must be http or https",
		},
		{
			name: "ftp scheme",
			yaml: `
server:
  url: ftp://example.com
`,
			wantErrLike: "scheme must be http or https",
		},
		{
			name: "missing host",
			yaml: `
server:
  url: "http://"
`,
			wantErrLike: "host is required",
		},
		{
			name: "port too high",
			yaml: `
port: 70000
server:
  url: http://localhost:8081
`,
			wantErrLike: "port must be between",
		},
		{
			name: "negative port",
			yaml: `
port: -1
server:
  url: http://localhost:8081
`,
			wantErrLike: "port must be between",
		},
		{
			name: "poll interval too short",
			yaml: `
poll_interval: 500ms
server:
  url: http://localhost:8081
`,
			wantErrLike: "poll_interval must be at least 1s",
		},
		{
			name: "timeout too short",
			yaml: `
server:
  url: http://localhost:8081
  timeout: 100ms
`,
			wantErrLike: "server.timeout must be at least 1s",
		},
		{
			name: "negative timeout",
			yaml: `
server:
  url: http://localhost:8081
  timeout: -5s
`,
			wantErrLike: "server.timeout must be at least 1s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErrLike) {
				t.Errorf("Parse() error = %v, want error containing %q", err, tt.wantErrLike)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("server: [unclosed"))
	if err == nil {
		t.Fatal("Parse() expected error for invalid YAML, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Parse() error = %v, want YAML parse failure", err)
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	yaml := `
poll_interval: soon
server:
  url: http://localhost:8081
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for invalid duration, got nil")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("Parse() error = %v, want invalid duration", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellremote.yaml")
	content := `
title: From File
server:
  url: http://localhost:8081
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Title != "From File" {
		t.Errorf("Title = %q, want %q", cfg.Title, "From File")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %v, want read failure", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "value")
	t.Setenv("EMPTY_VAR", "")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"no vars", "plain text", "plain text", false},
		{"simple var", "${TEST_VAR}", "value", false},
		{"var in text", "prefix ${TEST_VAR} suffix", "prefix value suffix", false},
		{"multiple vars", "${TEST_VAR}-${TEST_VAR}", "value-value", false},
		{"with default (var set)", "${TEST_VAR:-default}", "value", false},
		{"with default (var unset)", "${CELLREMOTE_UNSET:-default}", "default", false},
		{"missing required", "${CELLREMOTE_MISSING}", "", true},
		{"empty default (var unset)", "${CELLREMOTE_UNSET:-}", "", false},
		{"set but empty var", "${EMPTY_VAR}", "", false},
		{"set but empty with default", "${EMPTY_VAR:-fallback}", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandEnvVars(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expandEnvVars() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expandEnvVars() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars() = %q, want %q", got, tt.want)
			}
		})
	}
}
