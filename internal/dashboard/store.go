package dashboard

import (
	"sync"

	"github.com/couchcryptid/space-dashboard/internal/domain"
)

// BodyStore caches raw body payloads for the session. Each key is written at
// most once; later writes are ignored.
type BodyStore struct {
	mu       sync.RWMutex
	payloads map[domain.BodyKey][]byte
}

// NewBodyStore creates an empty store.
func NewBodyStore() *BodyStore {
	return &BodyStore{payloads: make(map[domain.BodyKey][]byte)}
}

// Put stores payload under key and reports whether it was stored.
func (s *BodyStore) Put(key domain.BodyKey, payload []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payloads[key]; ok {
		return false
	}
	s.payloads[key] = payload
	return true
}

// Get returns the cached payload for key.
func (s *BodyStore) Get(key domain.BodyKey) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payloads[key]
	return p, ok
}

// Len returns the number of cached bodies.
func (s *BodyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payloads)
}
