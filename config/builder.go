package config

import (
	"sort"

	"github.com/jpalmerr/cellremote"
)

// BuildRobotServer converts the server section into an SDK RobotServer.
func BuildRobotServer(cfg *Config) (cellremote.RobotServer, error) {
	var opts []cellremote.RobotServerOption

	if cfg.Server.Timeout != 0 {
		opts = append(opts, cellremote.WithTimeout(cfg.Server.Timeout.Duration()))
	}
	if len(cfg.Server.Headers) > 0 {
		opts = append(opts, cellremote.WithHeaders(mapToKeyValuePairs(cfg.Server.Headers)...))
	}

	return cellremote.NewRobotServer(cfg.Server.URL, opts...)
}

// BuildOptions converts parsed configuration into SDK options for
// [cellremote.New]. Callers append their own options, such as a logger.
func BuildOptions(cfg *Config) ([]cellremote.Option, error) {
	rs, err := BuildRobotServer(cfg)
	if err != nil {
		return nil, err
	}

	opts := []cellremote.Option{
		cellremote.WithRobotServer(rs),
		cellremote.WithPort(cfg.Port),
		cellremote.WithPollingInterval(cfg.PollInterval.Duration()),
	}
	if cfg.Title != "" {
		opts = append(opts, cellremote.WithTitle(cfg.Title))
	}
	return opts, nil
}

// mapToKeyValuePairs converts a map to a slice of key-value pairs sorted
// by key.
func mapToKeyValuePairs(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}
