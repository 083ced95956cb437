package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/cellremote"
)

var sendCmd = &cobra.Command{
	Use:   "send [flags] MESSAGE...",
	Short: "Send one command to a robot",
	Long: `Send a single text command to a robot and print the resulting log.

The message words are joined with spaces and placed in the request as
typed. Characters such as & # or % are not escaped and change the request.

The log is printed newest first: the robot server's answer (on HTTP 200),
then the "About to send" line.

Example:
  cellremote send --server http://localhost:8081 --robot robot1 forward
  cellremote send --server http://localhost:8081 --robot robot1 --wait 3s turn left`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	addServerFlags(sendCmd)
	sendCmd.Flags().StringP("robot", "r", "", "robot name (required)")
	sendCmd.Flags().Duration("wait", 10*time.Second, "how long to wait for the answer")
	_ = sendCmd.MarkFlagRequired("robot")
}

func runSend(cmd *cobra.Command, args []string) error {
	remote, err := remoteFromFlags(cmd, newLogger())
	if err != nil {
		return err
	}
	defer remote.Close()

	robot, _ := cmd.Flags().GetString("robot")
	wait, _ := cmd.Flags().GetDuration("wait")
	message := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(commandContext(cmd), wait)
	defer cancel()

	select {
	case <-remote.SendCommand(ctx, message, robot):
	case <-ctx.Done():
	}

	fmt.Fprintln(cmd.OutOrStdout(), remote.Log())
	return nil
}

// addServerFlags registers the flags describing the robot server.
func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("server", "s", "", "robot server base URL (required)")
	cmd.Flags().Duration("timeout", 0, "per-request timeout (default 10s)")
	cmd.Flags().StringArrayP("header", "H", nil, `request header as "Name: value", repeatable`)
	_ = cmd.MarkFlagRequired("server")
}

// remoteFromFlags builds a Remote from the robot server flags.
func remoteFromFlags(cmd *cobra.Command, logger *slog.Logger) (*cellremote.Remote, error) {
	serverURL, _ := cmd.Flags().GetString("server")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	headers, _ := cmd.Flags().GetStringArray("header")

	var opts []cellremote.RobotServerOption
	if timeout != 0 {
		opts = append(opts, cellremote.WithTimeout(timeout))
	}
	if len(headers) > 0 {
		pairs, err := headerPairs(headers)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cellremote.WithHeaders(pairs...))
	}

	rs, err := cellremote.NewRobotServer(serverURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid --server: %w", err)
	}

	remote, err := cellremote.New(
		cellremote.WithRobotServer(rs),
		cellremote.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote: %w", err)
	}
	return remote, nil
}

// headerPairs splits "Name: value" flags into key-value pairs.
func headerPairs(headers []string) ([]string, error) {
	pairs := make([]string, 0, len(headers)*2)
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf(`invalid --header %q: want "Name: value"`, h)
		}
		pairs = append(pairs, name, strings.TrimSpace(value))
	}
	return pairs, nil
}

// commandContext returns the command's context, or Background when run
// outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
