// Package session holds the live per-user conversation state: which workflow
// and step are active and the data collected so far. State is in-memory only;
// sessions do not survive a restart.
package session

import (
	"sync"

	"github.com/dmtrv/lifebot/internal/models"
)

// Field is one seeded field/value pair, used when a shortcut button starts a
// workflow past its first step.
type Field struct {
	Name  string
	Value any
}

// Session is the per-user record of an in-flight workflow. A user has at most
// one; starting a new workflow replaces it outright.
type Session struct {
	UserID   int64
	Workflow models.WorkflowID

	// Step is the 0-based index into the workflow's step list.
	Step int

	Data *Bag
}

// Store keeps at most one Session per user. All methods are safe for
// concurrent use from different user contexts; per-user event ordering is the
// caller's responsibility.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the user's active session, or nil if the user is not mid-flow.
func (s *Store) Get(userID int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[userID]
}

// Start creates a session at the given step, replacing any existing session
// for the user. Seed fields let shortcut buttons pre-fill the bag.
func (s *Store) Start(userID int64, workflow models.WorkflowID, step int, seed ...Field) *Session {
	bag := NewBag()
	for _, f := range seed {
		bag.Set(f.Name, f.Value)
	}

	sess := &Session{
		UserID:   userID,
		Workflow: workflow,
		Step:     step,
		Data:     bag,
	}

	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()

	return sess
}

// Advance merges one validated field into the session's bag and moves to the
// next step. It is a no-op if the user has no session.
func (s *Store) Advance(userID int64, field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return
	}
	sess.Data.Set(field, value)
	sess.Step++
}

// Put merges one validated field without advancing. Used on the terminal
// step, where the commit decides whether the session survives.
func (s *Store) Put(userID int64, field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		sess.Data.Set(field, value)
	}
}

// Clear destroys the user's session. Returns true if one existed.
func (s *Store) Clear(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[userID]
	delete(s.sessions, userID)
	return ok
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
