package poller

import "sync"

// MemorySeenStore remembers which orders were already announced. It is
// process-local: after a restart every pending order is announced again,
// which beats staying silent about one.
type MemorySeenStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemorySeenStore() *MemorySeenStore {
	return &MemorySeenStore{seen: make(map[string]struct{})}
}

func (s *MemorySeenStore) Seen(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[orderID]
	return ok
}

func (s *MemorySeenStore) MarkSeen(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[orderID] = struct{}{}
}
