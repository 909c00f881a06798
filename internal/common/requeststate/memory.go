// internal/common/requeststate/memory.go
package requeststate

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps snapshots in process. Entries older than ttl are dropped on read.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	locks     map[string]struct{}
	ttl       time.Duration
	now       func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]*Snapshot),
		locks:     make(map[string]struct{}),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *MemoryStore) Acquire(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, held := s.locks[key]; held {
		return false, nil
	}
	s.locks[key] = struct{}{}
	return true, nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, key string) (*Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if s.expired(snap) {
		s.mu.Lock()
		// A Save may have replaced the entry since the read lock was dropped.
		current, ok := s.snapshots[key]
		if ok && s.expired(current) {
			delete(s.snapshots, key)
			ok = false
		}
		s.mu.Unlock()
		if !ok {
			return nil, nil
		}
		snap = current
	}

	cp := *snap
	return &cp, nil
}

func (s *MemoryStore) expired(snap *Snapshot) bool {
	return s.ttl > 0 && snap.State.Settled() && s.now().Sub(snap.UpdatedAt) > s.ttl
}

func (s *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	cp := *snap
	s.mu.Lock()
	s.snapshots[snap.Key] = &cp
	s.mu.Unlock()
	return nil
}
