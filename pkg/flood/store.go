package flood

import (
	"sync"
	"sync/atomic"
	"time"
)

// Store. holds the current snapshot. readers always see one complete snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]

	mu          sync.Mutex
	seq         uint
	subscribers map[uint]chan *Snapshot
}

func NewStore() *Store {
	s := &Store{
		subscribers: make(map[uint]chan *Snapshot),
	}
	s.current.Store(NewSnapshot(nil, time.Time{}))
	return s
}

func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Replace. swap in a new snapshot and notify subscribers.
func (s *Store) Replace(snapshot *Snapshot) {
	s.current.Store(snapshot)
	s.publish(snapshot)
}

// Clear. drop every reading after a failed refresh so stale levels are never used.
func (s *Store) Clear(err error) {
	s.Replace(newFailedSnapshot(err, time.Now()))
}

// Subscribe. the channel receives every new snapshot, a slow subscriber only misses intermediate ones.
func (s *Store) Subscribe() (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, 1)

	s.mu.Lock()
	id := s.seq
	s.seq++
	s.subscribers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[id]; !ok {
			return
		}
		delete(s.subscribers, id)
		close(ch)
	}
	return ch, cancel
}

func (s *Store) publish(snapshot *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			// drop the stale pending snapshot, keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
