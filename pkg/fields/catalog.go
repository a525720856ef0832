package fields

import (
	"sync"

	"github.com/charmbracelet/log"
)

// MappingSource feeds the catalog with field metadata snapshots.
type MappingSource interface {
	// InitialState returns the snapshot at subscription time.
	InitialState() Snapshot
	// Listen registers a change callback and returns an unsubscribe func.
	Listen(func(Snapshot)) func()
}

// ActiveQuerySource feeds the catalog with the currently active query id.
type ActiveQuerySource interface {
	InitialState() string
	Listen(func(string)) func()
}

// Catalog is a queryable view over the field metadata and active-query
// stores. It subscribes on construction and must be Closed to detach.
// The held snapshot is read-only and replaced atomically on notification,
// never mutated in place.
type Catalog struct {
	mu          sync.RWMutex
	snapshot    Snapshot
	activeQuery string
	unsubscribe []func()
}

// NewCatalog builds a catalog subscribed to both sources.
func NewCatalog(mappings MappingSource, queries ActiveQuerySource) *Catalog {
	c := &Catalog{
		snapshot:    mappings.InitialState(),
		activeQuery: queries.InitialState(),
	}
	c.unsubscribe = append(c.unsubscribe,
		mappings.Listen(func(s Snapshot) {
			c.mu.Lock()
			c.snapshot = s
			c.mu.Unlock()
			log.Debugf("field catalog replaced: %d fields, %d partitions", len(s.All), len(s.ByQuery))
		}),
		queries.Listen(func(id string) {
			c.mu.Lock()
			c.activeQuery = id
			c.mu.Unlock()
			log.Debugf("active query now %q", id)
		}),
	)
	return c
}

// Close detaches the catalog from its sources.
func (c *Catalog) Close() {
	for _, u := range c.unsubscribe {
		u()
	}
	c.unsubscribe = nil
}

// Snapshot returns the current immutable snapshot.
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// ActiveQuery returns the id of the currently selected query.
func (c *Catalog) ActiveQuery() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeQuery
}

// ActiveView returns the snapshot together with the active query id, taken
// under one lock so the pair is consistent.
func (c *Catalog) ActiveView() (Snapshot, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, c.activeQuery
}
