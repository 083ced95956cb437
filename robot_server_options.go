package cellremote

import (
	"errors"
	"time"
)

// robotServerConfig holds mutable state during RobotServer construction.
type robotServerConfig struct {
	headers map[string]string
	timeout time.Duration
}

// RobotServerOption configures a [RobotServer] during construction.
type RobotServerOption func(*robotServerConfig) error

// WithHeaders sets custom HTTP headers sent with every request to the robot
// server, given as key-value pairs.
//
// Example:
//
//	rs, err := cellremote.NewRobotServer(url,
//	    cellremote.WithHeaders("Authorization", "Bearer token"),
//	)
//
// Returns an error if an odd number of arguments is given.
func WithHeaders(keyValues ...string) RobotServerOption {
	return func(cfg *robotServerConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithHeaders requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithTimeout sets the per-request timeout. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) RobotServerOption {
	return func(cfg *robotServerConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}
