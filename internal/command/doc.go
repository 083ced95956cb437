// Package command sends one-shot text commands to a named robot and records
// each attempt in the "robotresponses" log region.
//
// A send always leaves an "About to send" line in the log before the request
// goes out. The robot server's reply is prepended only when it answers 200;
// every other outcome is silent in the log.
package command
