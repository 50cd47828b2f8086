package store

import (
	"errors"
	"sync"
	"time"

	"codepair/internal/model"
)

// ErrDuplicateSession means a session id collided on create. With
// collision-resistant id generation upstream this is practically
// unreachable and callers treat it as fatal.
var ErrDuplicateSession = errors.New("session id already exists")

// SessionStore owns every Session and Participant record. It holds the
// invariant that a session exists iff it has at least one participant
// (outside the create->add window of a single handler call). Each
// websocket connection reads events on its own goroutine, so a coarse
// lock guards the map; all operations are O(1) or O(participants).
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewSessionStore creates an empty in-memory session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*model.Session),
	}
}

// CreateSession inserts a new session with default code and language
// and no participants
func (s *SessionStore) CreateSession(id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; exists {
		return nil, ErrDuplicateSession
	}

	sess := &model.Session{
		ID:           id,
		Code:         model.DefaultCode,
		Language:     model.DefaultLanguage,
		CreatedAt:    time.Now(),
		Participants: make(map[string]model.Participant),
	}
	s.sessions[id] = sess

	return snapshot(sess), nil
}

// GetSession returns a snapshot of the session, or false if absent
func (s *SessionStore) GetSession(id string) (*model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return snapshot(sess), true
}

// DeleteSession removes a session outright, returning false if absent
func (s *SessionStore) DeleteSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// AddParticipant inserts or overwrites a participant by id. Overwriting
// an existing id is allowed so a re-join is idempotent.
func (s *SessionStore) AddParticipant(sessionID string, p model.Participant) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	sess.Participants[p.ID] = p
	return true
}

// RemoveParticipant removes a participant and, if it was the last one,
// deletes the session and all its state
func (s *SessionStore) RemoveParticipant(sessionID, participantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}

	_, removed := sess.Participants[participantID]
	delete(sess.Participants, participantID)

	if len(sess.Participants) == 0 {
		delete(s.sessions, sessionID)
	}

	return removed
}

// UpdateCode replaces the full buffer, last write wins
func (s *SessionStore) UpdateCode(sessionID, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	sess.Code = code
	return true
}

// UpdateLanguage replaces the language selection, last write wins
func (s *SessionStore) UpdateLanguage(sessionID, language string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	sess.Language = language
	return true
}

// SessionState projects a session into its externally visible shape,
// with participants flattened to a slice
func (s *SessionStore) SessionState(sessionID string) (*model.SessionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}

	participants := make([]model.Participant, 0, len(sess.Participants))
	for _, p := range sess.Participants {
		participants = append(participants, p)
	}

	return &model.SessionState{
		ID:           sess.ID,
		Code:         sess.Code,
		Language:     sess.Language,
		Participants: participants,
	}, true
}

// Participant looks up one participant by session and connection id
func (s *SessionStore) Participant(sessionID, participantID string) (model.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.Participant{}, false
	}
	p, ok := sess.Participants[participantID]
	return p, ok
}

// Count returns the number of live sessions
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// snapshot copies a session so callers never hold a reference into the
// store's own records
func snapshot(sess *model.Session) *model.Session {
	participants := make(map[string]model.Participant, len(sess.Participants))
	for id, p := range sess.Participants {
		participants[id] = p
	}
	return &model.Session{
		ID:           sess.ID,
		Code:         sess.Code,
		Language:     sess.Language,
		CreatedAt:    sess.CreatedAt,
		Participants: participants,
	}
}
