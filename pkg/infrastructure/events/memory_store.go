package events

import (
	"sync"
)

// InMemoryStore keeps solve event streams in memory. Safe for concurrent
// use; versions are per-stream and start at 1.
type InMemoryStore struct {
	mutex   sync.RWMutex
	streams map[string][]Event
}

// NewInMemoryStore creates an empty store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{streams: make(map[string][]Event)}
}

// Verify interface compliance
var _ Store = (*InMemoryStore)(nil)

// Append records an event at the end of its stream
func (s *InMemoryStore) Append(event Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	event.Version = len(s.streams[event.Stream]) + 1
	s.streams[event.Stream] = append(s.streams[event.Stream], event)
}

// Events returns a copy of one stream in append order
func (s *InMemoryStore) Events(stream string) []Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	recorded := s.streams[stream]
	out := make([]Event, len(recorded))
	copy(out, recorded)
	return out
}
