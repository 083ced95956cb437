// Package poller keeps the "robotsonline" region in step with the robot
// server.
//
// A [Poller] fetches the robot listing once on start and then again on every
// tick of a fixed interval. Each fetch is independent: a new tick never waits
// for or cancels a fetch still in flight, so responses may land out of order
// and whichever completes last owns the region.
//
// The main components are:
//
//   - [Poller]: Periodic fetch loop writing into a display store
//   - [Target]: Where and how to fetch the listing
//   - [Result]: Outcome of a single fetch
package poller
