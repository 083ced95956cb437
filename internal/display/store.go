package display

import "time"

// Well-known region IDs. They double as the element IDs on the console page.
const (
	RegionOnline    = "robotsonline"
	RegionResponses = "robotresponses"
)

// Region is a snapshot of one display region.
type Region struct {
	// ID identifies the region (see [RegionOnline], [RegionResponses]).
	ID string `json:"id"`

	// Content is the region's current HTML content.
	Content string `json:"content"`

	// UpdatedAt is when the region was last written. Zero if never written.
	UpdatedAt time.Time `json:"updated_at"`
}

// Store defines the interface for writing and observing display regions.
//
// Store implementations must be safe for concurrent access.
type Store interface {
	// Replace overwrites the region's content and notifies subscribers.
	Replace(id, content string)

	// Prepend places fragment before the region's existing content and
	// notifies subscribers.
	Prepend(id, fragment string)

	// Get returns the region's current content, or "" if it was never written.
	Get(id string) string

	// GetAll returns a snapshot of every known region, ordered by ID.
	GetAll() []Region

	// Subscribe returns a channel that receives region snapshots after each write.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan Region

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan Region)
}
