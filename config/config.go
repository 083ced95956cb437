// Package config provides YAML configuration parsing for cellremote.
//
// Example configuration:
//
//	title: Lab Fleet
//	port: 8080
//	poll_interval: 10s
//
//	server:
//	  url: ${ROBOT_SERVER_URL:-http://localhost:8081}
//	  timeout: 5s
//	  headers:
//	    Authorization: Bearer ${ROBOT_TOKEN}
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort         = 8080
	defaultPollInterval = 10 * time.Second

	// minPollInterval keeps a config file from hammering the robot server.
	minPollInterval = 1 * time.Second
)

// Config is the root configuration structure.
//
// It maps directly to the YAML configuration file. Use [Load] or [Parse] to
// create one.
type Config struct {
	// Title is the dashboard title. Defaults to "Cellbot Remote" if not set.
	Title string `yaml:"title"`

	// Port is the dashboard HTTP port. Defaults to 8080.
	Port int `yaml:"port"`

	// PollInterval is the time between robot listing fetches.
	// Accepts duration strings like "10s", "1m". Defaults to 10s.
	PollInterval Duration `yaml:"poll_interval"`

	// Server is the robot server to talk to.
	Server ServerConfig `yaml:"server"`
}

// ServerConfig describes the robot server.
type ServerConfig struct {
	// URL is the base URL; robotsonline and sendmsg are resolved against it.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string `yaml:"url"`

	// Timeout is the per-request timeout. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// Headers are sent with every request. Values support environment
	// variable substitution.
	Headers map[string]string `yaml:"headers"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
// Group 1 is the name, group 2 the ":-default" part, group 3 the default.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
// An unset variable without a default is an error.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		sub := envVarPattern.FindStringSubmatch(match)
		name := sub[1]
		hasDefault := sub[2] != ""

		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if hasDefault {
			return sub[3]
		}
		firstErr = fmt.Errorf("environment variable %q is not set", name)
		return match
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in the server URL and header values.
// Defaults are applied for Port (8080) and PollInterval (10s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(defaultPollInterval)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}

	s := &c.Server
	if s.URL == "" {
		return errors.New("server.url is required")
	}
	expanded, err := expandEnvVars(s.URL)
	if err != nil {
		return fmt.Errorf("server.url: %w", err)
	}
	s.URL = expanded

	parsedURL, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("server.url: invalid url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("server.url: scheme must be http or https, got %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return errors.New("server.url: host is required")
	}

	for k, v := range s.Headers {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("server.headers[%s]: %w", k, err)
		}
		s.Headers[k] = expanded
	}

	if s.Timeout != 0 && s.Timeout.Duration() < time.Second {
		return fmt.Errorf("server.timeout must be at least 1s if specified, got %s", s.Timeout.Duration())
	}

	return nil
}
