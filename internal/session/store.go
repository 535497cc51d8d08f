package session

import (
	"sync"
	"time"
)

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
}

func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
	}
}

// Put registers a session, failing with ErrCapacity when full.
func (s *Store) Put(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.sessions) >= s.max {
		return ErrCapacity
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// Delete removes a session and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes sessions idle for longer than the TTL and returns how
// many were evicted.
func (s *Store) Cleanup(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed()) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
