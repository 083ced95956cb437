package main

import (
	"bytes"
	"io"
	"testing"
)

// executeCmd runs the root command with args and returns captured stdout.
// Flag values persist on the package-level commands between calls, so
// tests pass every flag they rely on.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}
