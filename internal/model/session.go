package model

import "time"

// Defaults applied to every freshly created session.
const (
	DefaultCode     = "// Start coding here...\n"
	DefaultLanguage = "javascript"
)

type CursorPosition struct {
	LineNumber int `json:"lineNumber"`
	Column     int `json:"column"`
}

type Participant struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CursorPosition *CursorPosition `json:"cursorPosition,omitempty"`
}

// Session is one shared coding room. Participants are keyed by the
// owning connection's transport identifier.
type Session struct {
	ID           string
	Code         string
	Language     string
	CreatedAt    time.Time
	Participants map[string]Participant
}

// SessionState is the externally visible projection of a Session,
// delivered to clients on session:joined.
type SessionState struct {
	ID           string        `json:"id"`
	Code         string        `json:"code"`
	Language     string        `json:"language"`
	Participants []Participant `json:"participants"`
}
