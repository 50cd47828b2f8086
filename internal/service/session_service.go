package service

import (
	"codepair/internal/model"
	"codepair/internal/store"

	"go.uber.org/zap"
)

// Display names applied when the caller leaves the name blank.
const (
	defaultCreatorName = "Interviewer"
	defaultJoinerName  = "Candidate"
)

const errSessionNotFound = "Session not found"

// SessionService implements the session protocol: it binds connection
// events to store mutations and fans the results out through the
// broadcaster. The store is the single source of truth; the only state
// outside it is each Conn's current-session pointer.
type SessionService struct {
	store       *store.SessionStore
	broadcaster RoomBroadcaster
	logger      *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(st *store.SessionStore, b RoomBroadcaster, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:       st,
		broadcaster: b,
		logger:      logger,
	}
}

// Conn holds the protocol state of one connection: its transport id and
// the session it currently belongs to, if any. A Conn is driven by the
// connection's single reader goroutine and needs no locking.
type Conn struct {
	svc       *SessionService
	connID    string
	sessionID string // empty while unjoined
}

// NewConn creates the per-connection protocol state
func (s *SessionService) NewConn(connID string) *Conn {
	return &Conn{svc: s, connID: connID}
}

// SessionID returns the session this connection currently belongs to,
// or empty if unjoined
func (c *Conn) SessionID() string {
	return c.sessionID
}

// Create generates a fresh session, adds the caller as its sole
// participant and pushes the initial state. A create while already
// joined leaves the old session first.
func (c *Conn) Create(userName string, ack Ack) {
	c.leaveCurrent()

	sessionID, err := newSessionID()
	if err == nil {
		_, err = c.svc.store.CreateSession(sessionID)
	}
	if err != nil {
		// id-space exhaustion or a generator defect, not retryable
		c.svc.logger.Error("session create failed",
			zap.String("conn", c.connID),
			zap.Error(err))
		return
	}

	name := userName
	if name == "" {
		name = defaultCreatorName
	}
	c.svc.store.AddParticipant(sessionID, model.Participant{ID: c.connID, Name: name})
	c.sessionID = sessionID
	c.svc.broadcaster.JoinRoom(c.connID, sessionID)

	ack(model.CreateSessionResponse{SessionID: sessionID})
	if state, ok := c.svc.store.SessionState(sessionID); ok {
		c.svc.broadcaster.EmitTo(c.connID, model.EventSessionJoined, state)
	}

	c.svc.logger.Info("session created",
		zap.String("session", sessionID),
		zap.String("user", name))
}

// Join adds the caller to an existing session, pushes the current state
// to it and announces the new participant to everyone else. A failed
// join mutates nothing and leaves the caller unjoined.
func (c *Conn) Join(req model.JoinSessionRequest, ack Ack) {
	if _, ok := c.svc.store.GetSession(req.SessionID); !ok {
		ack(model.JoinSessionResponse{Success: false, Error: errSessionNotFound})
		return
	}

	// Joining a different session while joined leaves the old one
	// first. Re-joining the current session is an idempotent overwrite.
	if c.sessionID != req.SessionID {
		c.leaveCurrent()
	}

	name := req.UserName
	if name == "" {
		name = defaultJoinerName
	}
	c.svc.store.AddParticipant(req.SessionID, model.Participant{ID: c.connID, Name: name})
	c.sessionID = req.SessionID
	c.svc.broadcaster.JoinRoom(c.connID, req.SessionID)

	ack(model.JoinSessionResponse{Success: true})
	if state, ok := c.svc.store.SessionState(req.SessionID); ok {
		c.svc.broadcaster.EmitTo(c.connID, model.EventSessionJoined, state)
	}
	c.svc.broadcaster.BroadcastToRoom(req.SessionID, c.connID, model.EventUserJoined,
		model.UserEvent{ID: c.connID, Name: name})

	c.svc.logger.Info("user joined session",
		zap.String("session", req.SessionID),
		zap.String("user", name))
}

// CodeChange overwrites the shared buffer and relays it to the other
// room members. Ignored while unjoined.
func (c *Conn) CodeChange(req model.CodeChangeRequest) {
	if c.sessionID == "" {
		return
	}
	c.svc.store.UpdateCode(c.sessionID, req.Code)
	c.svc.broadcaster.BroadcastToRoom(c.sessionID, c.connID, model.EventCodeChange,
		model.CodeChangeBroadcast{Code: req.Code, UserID: c.connID})
}

// LanguageChange overwrites the language selection and relays it to the
// other room members. Ignored while unjoined.
func (c *Conn) LanguageChange(req model.LanguageChangeRequest) {
	if c.sessionID == "" {
		return
	}
	c.svc.store.UpdateLanguage(c.sessionID, req.Language)
	c.svc.broadcaster.BroadcastToRoom(c.sessionID, c.connID, model.EventLanguageChange,
		model.LanguageChangeBroadcast{Language: req.Language, UserID: c.connID})
}

// CursorMove relays a cursor position to the other room members.
// Cursor state is never persisted in the store.
func (c *Conn) CursorMove(req model.CursorMoveRequest) {
	if c.sessionID == "" {
		return
	}
	p, _ := c.svc.store.Participant(c.sessionID, c.connID)
	c.svc.broadcaster.BroadcastToRoom(c.sessionID, c.connID, model.EventCursorMove,
		model.CursorMoveBroadcast{UserID: c.connID, Position: req.Position, UserName: p.Name})
}

// Disconnect cleans up session membership after the transport closed
// the connection
func (c *Conn) Disconnect() {
	if c.sessionID != "" {
		c.svc.logger.Info("user disconnected from session",
			zap.String("session", c.sessionID),
			zap.String("conn", c.connID))
	}
	c.leaveCurrent()
}

// leaveCurrent runs the full leave path for the current session, if
// any: capture the name, remove membership (deleting the session when
// it empties), exit the transport room, announce user:left. The
// broadcast to a now-empty room is a harmless no-op.
func (c *Conn) leaveCurrent() {
	if c.sessionID == "" {
		return
	}
	sessionID := c.sessionID
	c.sessionID = ""

	p, _ := c.svc.store.Participant(sessionID, c.connID)
	c.svc.store.RemoveParticipant(sessionID, c.connID)
	c.svc.broadcaster.LeaveRoom(c.connID, sessionID)
	c.svc.broadcaster.BroadcastToRoom(sessionID, c.connID, model.EventUserLeft,
		model.UserEvent{ID: c.connID, Name: p.Name})
}
