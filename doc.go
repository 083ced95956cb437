// Package cellremote is a remote console for a fleet of robots reachable
// through a robot server.
//
// A [Remote] keeps two display regions: robotsonline, replaced with the
// server's robot listing every polling interval, and robotresponses, a
// newest-first log of the commands sent and the server's answers. Both
// regions hold raw HTML from the server and are served on an embedded
// dashboard that updates live over Server-Sent Events.
//
// # Quick Start
//
//	rs, _ := cellremote.NewRobotServer("http://localhost:8081")
//	remote, _ := cellremote.New(cellremote.WithRobotServer(rs))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	remote.Start(ctx) // blocks until context is cancelled
//
// # Commands
//
// [Remote.SendCommand] logs "About to send to <robot>: <message><br>", then
// issues
//
//	GET <server>/sendmsg?msg=<message>&botname=<robot>&sid=<token>
//
// in the background. The message and robot name are placed in the URL as
// given; characters such as & or # are not escaped and change the request.
// Only a 200 answer is logged, as its raw body followed by <br>. Failures
// leave the log as it is and are visible only through [Response] callbacks
// and the logger.
//
// # Robot Listing
//
// The listing at <server>/robotsonline is fetched once on Start and then on
// every tick, without waiting for earlier fetches. Whichever 200 response
// lands last is displayed.
//
// # Architecture
//
//   - internal/transport: shared HTTP client
//   - internal/poller: listing fetch loop
//   - internal/command: command URL building and dispatch
//   - internal/display: in-memory regions with pub/sub
//   - internal/server: dashboard, REST API and Server-Sent Events
//   - dashboard: embedded web UI assets
package cellremote
