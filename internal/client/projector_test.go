package client

import (
	"encoding/json"
	"testing"

	"codepair/internal/model"
)

func apply(t *testing.T, p *Projector, event string, payload interface{}) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := p.Apply(event, raw); err != nil {
		t.Fatalf("apply %s: %v", event, err)
	}
}

func joinedState() model.SessionState {
	return model.SessionState{
		ID:       "sess-1",
		Code:     model.DefaultCode,
		Language: "javascript",
		Participants: []model.Participant{
			{ID: "conn-1", Name: "Interviewer"},
		},
	}
}

func TestSessionJoinedReplacesWholesale(t *testing.T) {
	p := NewProjector()
	apply(t, p, model.EventSessionJoined, joinedState())
	apply(t, p, model.EventCodeChange, model.CodeChangeBroadcast{Code: "old", UserID: "conn-1"})

	next := model.SessionState{
		ID:       "sess-2",
		Code:     "fresh",
		Language: "python",
		Participants: []model.Participant{
			{ID: "conn-9", Name: "Someone"},
		},
	}
	apply(t, p, model.EventSessionJoined, next)

	state := p.State()
	if state.ID != "sess-2" || state.Code != "fresh" || state.Language != "python" {
		t.Errorf("state = %+v", state)
	}
	if len(state.Participants) != 1 || state.Participants[0].ID != "conn-9" {
		t.Errorf("participants = %+v", state.Participants)
	}
}

func TestFieldPatches(t *testing.T) {
	p := NewProjector()
	apply(t, p, model.EventSessionJoined, joinedState())

	apply(t, p, model.EventCodeChange, model.CodeChangeBroadcast{Code: "print(1)", UserID: "conn-2"})
	if state := p.State(); state.Code != "print(1)" || state.Language != "javascript" {
		t.Errorf("after code patch: %+v", state)
	}

	apply(t, p, model.EventLanguageChange, model.LanguageChangeBroadcast{Language: "python", UserID: "conn-2"})
	if state := p.State(); state.Language != "python" || state.Code != "print(1)" {
		t.Errorf("after language patch: %+v", state)
	}
}

func TestUserJoinedAppends(t *testing.T) {
	p := NewProjector()
	apply(t, p, model.EventSessionJoined, joinedState())
	apply(t, p, model.EventUserJoined, model.UserEvent{ID: "conn-2", Name: "Candidate"})

	parts := p.Participants()
	if len(parts) != 2 || parts[1].Name != "Candidate" {
		t.Errorf("participants = %+v", parts)
	}
}

func TestUserLeftRemovesAndPurgesCursor(t *testing.T) {
	p := NewProjector()
	apply(t, p, model.EventSessionJoined, joinedState())
	apply(t, p, model.EventUserJoined, model.UserEvent{ID: "conn-2", Name: "Candidate"})
	apply(t, p, model.EventCursorMove, model.CursorMoveBroadcast{
		UserID:   "conn-2",
		Position: model.CursorPosition{LineNumber: 1, Column: 2},
		UserName: "Candidate",
	})

	apply(t, p, model.EventUserLeft, model.UserEvent{ID: "conn-2", Name: "Candidate"})

	parts := p.Participants()
	if len(parts) != 1 || parts[0].ID != "conn-1" {
		t.Errorf("participants = %+v", parts)
	}
	if _, ok := p.RemoteCursors()["conn-2"]; ok {
		t.Error("cursor for departed participant not purged")
	}
}

func TestCursorMoveUpserts(t *testing.T) {
	p := NewProjector()
	apply(t, p, model.EventSessionJoined, joinedState())

	apply(t, p, model.EventCursorMove, model.CursorMoveBroadcast{
		UserID: "conn-2", Position: model.CursorPosition{LineNumber: 1, Column: 1}, UserName: "Candidate",
	})
	apply(t, p, model.EventCursorMove, model.CursorMoveBroadcast{
		UserID: "conn-2", Position: model.CursorPosition{LineNumber: 8, Column: 4}, UserName: "Candidate",
	})

	cursors := p.RemoteCursors()
	if len(cursors) != 1 {
		t.Fatalf("cursors = %d entries, want 1", len(cursors))
	}
	cur := cursors["conn-2"]
	if cur.Position.LineNumber != 8 || cur.Position.Column != 4 || cur.UserName != "Candidate" {
		t.Errorf("cursor = %+v", cur)
	}
}

func TestResyncCapsCursorMap(t *testing.T) {
	p := NewProjector()
	apply(t, p, model.EventSessionJoined, joinedState())
	apply(t, p, model.EventCursorMove, model.CursorMoveBroadcast{
		UserID: "conn-gone", Position: model.CursorPosition{LineNumber: 1, Column: 1}, UserName: "Ghost",
	})
	apply(t, p, model.EventCursorMove, model.CursorMoveBroadcast{
		UserID: "conn-1", Position: model.CursorPosition{LineNumber: 2, Column: 2}, UserName: "Interviewer",
	})

	// A full resync containing only conn-1 must drop the stale entry.
	apply(t, p, model.EventSessionJoined, joinedState())

	cursors := p.RemoteCursors()
	if _, ok := cursors["conn-gone"]; ok {
		t.Error("resync kept a cursor for an unknown participant")
	}
	if _, ok := cursors["conn-1"]; !ok {
		t.Error("resync dropped a cursor for a current participant")
	}
}

func TestEventsBeforeFirstJoinAreSafe(t *testing.T) {
	p := NewProjector()

	apply(t, p, model.EventCodeChange, model.CodeChangeBroadcast{Code: "x", UserID: "conn-1"})
	apply(t, p, model.EventUserJoined, model.UserEvent{ID: "conn-2", Name: "Candidate"})
	apply(t, p, model.EventUserLeft, model.UserEvent{ID: "conn-2", Name: "Candidate"})

	if p.State() != nil {
		t.Error("state materialized without a session:joined")
	}
}

func TestUnknownEvent(t *testing.T) {
	p := NewProjector()
	if err := p.Apply("session:exploded", nil); err == nil {
		t.Error("expected error for unknown event")
	}
}
