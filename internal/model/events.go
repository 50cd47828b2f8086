package model

import "encoding/json"

// Envelope frames every websocket message. Seq correlates a request
// with its ack: the client sets it on session:create and session:join
// and the server mirrors it on the reply. All other events leave it
// zero.
type Envelope struct {
	Event   string          `json:"event"`
	Seq     int64           `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client -> server event names
const (
	EventSessionCreate  = "session:create"
	EventSessionJoin    = "session:join"
	EventCodeChange     = "code:change"
	EventLanguageChange = "language:change"
	EventCursorMove     = "cursor:move"
)

// Server -> client event names
const (
	EventSessionJoined = "session:joined"
	EventUserJoined    = "user:joined"
	EventUserLeft      = "user:left"
)

// CreateSessionRequest is the session:create payload
type CreateSessionRequest struct {
	UserName string `json:"userName"`
}

// CreateSessionResponse is the session:create ack payload
type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// JoinSessionRequest is the session:join payload
type JoinSessionRequest struct {
	SessionID string `json:"sessionId"`
	UserName  string `json:"userName"`
}

// JoinSessionResponse is the session:join ack payload
type JoinSessionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CodeChangeRequest is the inbound code:change payload
type CodeChangeRequest struct {
	Code string `json:"code"`
}

// CodeChangeBroadcast is the code:change payload relayed to other members
type CodeChangeBroadcast struct {
	Code   string `json:"code"`
	UserID string `json:"userId"`
}

// LanguageChangeRequest is the inbound language:change payload
type LanguageChangeRequest struct {
	Language string `json:"language"`
}

// LanguageChangeBroadcast is the language:change payload relayed to other members
type LanguageChangeBroadcast struct {
	Language string `json:"language"`
	UserID   string `json:"userId"`
}

// CursorMoveRequest is the inbound cursor:move payload
type CursorMoveRequest struct {
	Position CursorPosition `json:"position"`
}

// CursorMoveBroadcast is the cursor:move payload relayed to other members
type CursorMoveBroadcast struct {
	UserID   string         `json:"userId"`
	Position CursorPosition `json:"position"`
	UserName string         `json:"userName"`
}

// UserEvent is the user:joined / user:left payload
type UserEvent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
