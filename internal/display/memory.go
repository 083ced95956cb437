package display

import (
	"sort"
	"sync"
	"time"
)

// subscriberBuffer is the per-subscriber channel capacity.
const subscriberBuffer = 100

// MemoryStore is an in-memory implementation of [Store].
//
// Both well-known regions exist from construction with empty content, so
// the console page always has something to render.
type MemoryStore struct {
	mu          sync.RWMutex
	regions     map[string]Region
	subscribers map[chan Region]struct{}
	subMu       sync.RWMutex
	now         func() time.Time
}

// NewMemoryStore creates an empty [MemoryStore] with the well-known regions.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		regions: map[string]Region{
			RegionOnline:    {ID: RegionOnline},
			RegionResponses: {ID: RegionResponses},
		},
		subscribers: make(map[chan Region]struct{}),
		now:         time.Now,
	}
}

// Replace overwrites the region's content.
func (m *MemoryStore) Replace(id, content string) {
	m.mu.Lock()
	r := Region{ID: id, Content: content, UpdatedAt: m.now()}
	m.regions[id] = r
	m.notifySubscribers(r)
	m.mu.Unlock()
}

// Prepend places fragment in front of the region's content. The read and
// write happen under one lock so concurrent prepends never lose fragments.
func (m *MemoryStore) Prepend(id, fragment string) {
	m.mu.Lock()
	r := Region{ID: id, Content: fragment + m.regions[id].Content, UpdatedAt: m.now()}
	m.regions[id] = r
	m.notifySubscribers(r)
	m.mu.Unlock()
}

// Get returns the region's content.
func (m *MemoryStore) Get(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.regions[id].Content
}

// GetAll returns a snapshot of all regions sorted by ID.
func (m *MemoryStore) GetAll() []Region {
	m.mu.RLock()
	results := make([]Region, 0, len(m.regions))
	for _, r := range m.regions {
		results = append(results, r)
	}
	m.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// Subscribe returns a buffered channel of region snapshots.
func (m *MemoryStore) Subscribe() <-chan Region {
	ch := make(chan Region, subscriberBuffer)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (m *MemoryStore) Unsubscribe(ch <-chan Region) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers fans out without blocking; full channels drop the update.
// Callers hold m.mu so subscribers see snapshots in write order.
func (m *MemoryStore) notifySubscribers(r Region) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- r:
		default:
		}
	}
}
