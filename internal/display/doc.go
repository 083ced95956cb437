// Package display holds the page regions that cellremote renders into.
//
// The console page has two regions: "robotsonline", which the poller
// overwrites with the latest robot listing, and "robotresponses", the
// command log that the sender prepends to. Region content is raw HTML
// produced by the robot server and is stored without escaping.
//
// The main components are:
//
//   - [Store]: Interface defining region writes and subscriptions
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//   - [Region]: Snapshot of a single region
//
// Subscribers receive region snapshots via channels with non-blocking sends,
// so a slow subscriber misses updates instead of stalling a writer.
package display
