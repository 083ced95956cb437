package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/cellremote/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a cellremote configuration file without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  cellremote validate -c config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// catches what only the SDK checks, such as a query in the server URL
	if _, err := config.BuildRobotServer(cfg); err != nil {
		return fmt.Errorf("invalid config: server.url: %w", err)
	}

	timeout := "10s (default)"
	if cfg.Server.Timeout != 0 {
		timeout = cfg.Server.Timeout.Duration().String()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Robot server:  %s\n", cfg.Server.URL)
	fmt.Fprintf(out, "  Timeout:       %s\n", timeout)
	fmt.Fprintf(out, "  Headers:       %d\n", len(cfg.Server.Headers))
	fmt.Fprintf(out, "  Port:          %d\n", cfg.Port)
	fmt.Fprintf(out, "  Poll interval: %s\n", cfg.PollInterval.Duration())

	return nil
}
