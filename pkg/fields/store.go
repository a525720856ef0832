package fields

import "sync"

// MappingStore is an in-memory MappingSource with listener fan-out. The IPC
// server mutates it on catalog-update requests; subscribed catalogs see the
// replacement snapshot on their next read.
type MappingStore struct {
	mu        sync.Mutex
	snapshot  Snapshot
	listeners map[int]func(Snapshot)
	nextID    int
}

// NewMappingStore creates a store seeded with the given snapshot.
func NewMappingStore(initial Snapshot) *MappingStore {
	return &MappingStore{
		snapshot:  initial,
		listeners: make(map[int]func(Snapshot)),
	}
}

// InitialState returns the current snapshot.
func (s *MappingStore) InitialState() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Listen registers a callback for snapshot replacements.
func (s *MappingStore) Listen(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Replace swaps in a new snapshot and notifies listeners.
func (s *MappingStore) Replace(snapshot Snapshot) {
	s.mu.Lock()
	s.snapshot = snapshot
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// QueryStore is an in-memory ActiveQuerySource.
type QueryStore struct {
	mu        sync.Mutex
	active    string
	listeners map[int]func(string)
	nextID    int
}

// NewQueryStore creates a store with the given active query id.
func NewQueryStore(active string) *QueryStore {
	return &QueryStore{
		active:    active,
		listeners: make(map[int]func(string)),
	}
}

// InitialState returns the active query id.
func (s *QueryStore) InitialState() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Listen registers a callback for active-query changes.
func (s *QueryStore) Listen(fn func(string)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SetActive switches the active query and notifies listeners.
func (s *QueryStore) SetActive(id string) {
	s.mu.Lock()
	s.active = id
	listeners := make([]func(string), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(id)
	}
}
