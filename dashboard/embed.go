// Package dashboard provides the embedded console page for cellremote.
//
// The page carries the two display regions ("robotsonline" and
// "robotresponses") and a small script that keeps them in sync over
// Server-Sent Events and defines sendCommand for the robot listing's
// Send buttons.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the console page.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Console page with inline CSS and JavaScript
//
//go:embed assets/*
var Assets embed.FS
