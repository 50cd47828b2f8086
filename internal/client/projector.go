package client

import (
	"encoding/json"
	"fmt"
	"sync"

	"codepair/internal/model"
)

// RemoteCursor is the last reported cursor of another participant
type RemoteCursor struct {
	Position model.CursorPosition
	UserName string
}

// Projector mirrors session state from inbound events only; it never
// originates truth. A session:joined snapshot replaces everything
// wholesale, later events patch single fields. The remote-cursor map is
// purged on user:left and capped to current participant ids on every
// full resync.
type Projector struct {
	mu      sync.RWMutex
	state   *model.SessionState
	cursors map[string]RemoteCursor
}

// NewProjector creates an empty projector
func NewProjector() *Projector {
	return &Projector{cursors: make(map[string]RemoteCursor)}
}

// Apply reconciles one inbound event into the local mirror
func (p *Projector) Apply(event string, payload json.RawMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch event {
	case model.EventSessionJoined:
		var state model.SessionState
		if err := json.Unmarshal(payload, &state); err != nil {
			return err
		}
		p.state = &state
		p.capCursors()

	case model.EventCodeChange:
		var data model.CodeChangeBroadcast
		if err := json.Unmarshal(payload, &data); err != nil {
			return err
		}
		if p.state != nil {
			p.state.Code = data.Code
		}

	case model.EventLanguageChange:
		var data model.LanguageChangeBroadcast
		if err := json.Unmarshal(payload, &data); err != nil {
			return err
		}
		if p.state != nil {
			p.state.Language = data.Language
		}

	case model.EventUserJoined:
		var user model.UserEvent
		if err := json.Unmarshal(payload, &user); err != nil {
			return err
		}
		if p.state != nil {
			p.state.Participants = append(p.state.Participants,
				model.Participant{ID: user.ID, Name: user.Name})
		}

	case model.EventUserLeft:
		var user model.UserEvent
		if err := json.Unmarshal(payload, &user); err != nil {
			return err
		}
		if p.state != nil {
			kept := p.state.Participants[:0]
			for _, part := range p.state.Participants {
				if part.ID != user.ID {
					kept = append(kept, part)
				}
			}
			p.state.Participants = kept
		}
		delete(p.cursors, user.ID)

	case model.EventCursorMove:
		var data model.CursorMoveBroadcast
		if err := json.Unmarshal(payload, &data); err != nil {
			return err
		}
		p.cursors[data.UserID] = RemoteCursor{Position: data.Position, UserName: data.UserName}

	default:
		return fmt.Errorf("unknown event %q", event)
	}

	return nil
}

// capCursors drops cursor entries for ids no longer in the participant
// list. Caller holds the lock.
func (p *Projector) capCursors() {
	if p.state == nil {
		return
	}
	current := make(map[string]bool, len(p.state.Participants))
	for _, part := range p.state.Participants {
		current[part.ID] = true
	}
	for id := range p.cursors {
		if !current[id] {
			delete(p.cursors, id)
		}
	}
}

// State returns a copy of the mirrored session state, or nil before the
// first session:joined
func (p *Projector) State() *model.SessionState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.state == nil {
		return nil
	}
	state := *p.state
	state.Participants = append([]model.Participant(nil), p.state.Participants...)
	return &state
}

// Participants returns a copy of the mirrored participant list
func (p *Projector) Participants() []model.Participant {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.state == nil {
		return nil
	}
	return append([]model.Participant(nil), p.state.Participants...)
}

// RemoteCursors returns a copy of the remote-cursor map
func (p *Projector) RemoteCursors() map[string]RemoteCursor {
	p.mu.RLock()
	defer p.mu.RUnlock()

	cursors := make(map[string]RemoteCursor, len(p.cursors))
	for id, cur := range p.cursors {
		cursors[id] = cur
	}
	return cursors
}
