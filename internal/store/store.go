// Package store keeps the in-flight verification sessions.  State lives
// only in process memory: a restart loses it, and the periodic sweep
// re-derives overdue members from roles and join times, which is the real
// source of truth for expiry.
package store

import (
	"sync"

	"github.com/enactusftu/gatekeeper/internal/model"
)

// SessionStore maps member IDs to their pending verification.  Timer
// callbacks and the sweep run on their own goroutines, so access is
// serialized with a mutex; critical sections are plain map operations and
// stay short.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.PendingVerification
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]model.PendingVerification)}
}

// Get returns the pending verification for a member, if any.
func (s *SessionStore) Get(memberID string) (model.PendingVerification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pv, ok := s.sessions[memberID]
	return pv, ok
}

// PutIfAbsent stores a session unless one already exists for the member.
// It returns the session that is in the store after the call and whether
// the new one was stored.  At most one session per member can ever exist.
func (s *SessionStore) PutIfAbsent(pv model.PendingVerification) (model.PendingVerification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[pv.MemberID]; ok {
		return existing, false
	}
	s.sessions[pv.MemberID] = pv
	return pv, true
}

// Remove deletes the member's session and reports whether one existed.
// The removed session is returned so callers can finish cleanup (channel
// deletion) after the store no longer references it.
func (s *SessionStore) Remove(memberID string) (model.PendingVerification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pv, ok := s.sessions[memberID]
	if ok {
		delete(s.sessions, memberID)
	}
	return pv, ok
}

// Has reports whether the member has an in-flight session without copying it.
func (s *SessionStore) Has(memberID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[memberID]
	return ok
}

// List returns a snapshot of all in-flight sessions, for the operator API.
func (s *SessionStore) List() []model.PendingVerification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PendingVerification, 0, len(s.sessions))
	for _, pv := range s.sessions {
		out = append(out, pv)
	}
	return out
}

// Len returns the number of in-flight sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
