// Package main is the entry point for the cellremote CLI.
//
// Usage:
//
//	cellremote serve -c config.yaml                              # Start the console
//	cellremote validate -c config.yaml                           # Validate configuration
//	cellremote send --server URL --robot robot1 forward          # Send one command
//	cellremote robots --server URL                               # Print the robot listing
//	cellremote version                                           # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd only shows help; functionality lives in subcommands.
var rootCmd = &cobra.Command{
	Use:   "cellremote",
	Short: "A web remote for robots behind a robot server",
	Long: `cellremote is a remote console for robots reachable through a robot server.

It polls the server's robotsonline listing, lets you send single text
commands to a named robot, and shows both in a web UI kept live with
Server-Sent Events.

Quick start:
  1. Create a config file (cellremote.yaml)
  2. Run: cellremote serve -c cellremote.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  port: 8080
  poll_interval: 10s
  server:
    url: http://localhost:8081`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func main() {
	Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this cellremote binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cellremote %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
