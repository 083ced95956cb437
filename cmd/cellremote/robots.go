package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var robotsCmd = &cobra.Command{
	Use:   "robots",
	Short: "Print the robot server's online listing",
	Long: `Fetch robotsonline once and print the raw body.

Example:
  cellremote robots --server http://localhost:8081`,
	Args: cobra.NoArgs,
	RunE: runRobots,
}

func init() {
	rootCmd.AddCommand(robotsCmd)

	addServerFlags(robotsCmd)
}

func runRobots(cmd *cobra.Command, args []string) error {
	remote, err := remoteFromFlags(cmd, newLogger())
	if err != nil {
		return err
	}
	defer remote.Close()

	resp := remote.FetchOnlineRobots(commandContext(cmd))
	if resp.Error != nil {
		return fmt.Errorf("failed to fetch robot listing: %w", resp.Error)
	}
	if !resp.Rendered {
		return fmt.Errorf("failed to fetch robot listing: status %d", resp.StatusCode)
	}

	fmt.Fprintln(cmd.OutOrStdout(), remote.Online())
	return nil
}
