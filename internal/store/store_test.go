package store

import (
	"testing"

	"codepair/internal/model"
)

func TestCreateSessionDefaults(t *testing.T) {
	s := NewSessionStore()

	sess, err := s.CreateSession("test-id")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if sess.ID != "test-id" {
		t.Errorf("id = %q, want %q", sess.ID, "test-id")
	}
	if sess.Code != model.DefaultCode {
		t.Errorf("code = %q, want %q", sess.Code, model.DefaultCode)
	}
	if sess.Language != "javascript" {
		t.Errorf("language = %q, want %q", sess.Language, "javascript")
	}
	if sess.CreatedAt.IsZero() {
		t.Error("createdAt is zero")
	}
	if len(sess.Participants) != 0 {
		t.Errorf("participants = %d, want 0", len(sess.Participants))
	}

	if _, ok := s.GetSession("test-id"); !ok {
		t.Error("created session not retrievable")
	}
}

func TestCreateSessionDuplicate(t *testing.T) {
	s := NewSessionStore()

	if _, err := s.CreateSession("test-id"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.CreateSession("test-id"); err != ErrDuplicateSession {
		t.Errorf("second create err = %v, want ErrDuplicateSession", err)
	}
}

func TestGetSessionAbsent(t *testing.T) {
	s := NewSessionStore()

	if _, ok := s.GetSession("non-existent"); ok {
		t.Error("expected absent session")
	}
}

func TestDeleteSession(t *testing.T) {
	s := NewSessionStore()
	s.CreateSession("test-id")

	if !s.DeleteSession("test-id") {
		t.Error("delete existing = false, want true")
	}
	if _, ok := s.GetSession("test-id"); ok {
		t.Error("session still present after delete")
	}
	if s.DeleteSession("non-existent") {
		t.Error("delete absent = true, want false")
	}
}

func TestAddParticipant(t *testing.T) {
	s := NewSessionStore()
	s.CreateSession("test-id")

	if !s.AddParticipant("test-id", model.Participant{ID: "user-1", Name: "Alice"}) {
		t.Fatal("AddParticipant = false, want true")
	}

	p, ok := s.Participant("test-id", "user-1")
	if !ok || p.Name != "Alice" {
		t.Errorf("participant = %+v ok=%v, want Alice", p, ok)
	}

	if s.AddParticipant("non-existent", model.Participant{ID: "user-1", Name: "Alice"}) {
		t.Error("AddParticipant on absent session = true, want false")
	}
}

func TestAddParticipantOverwritesName(t *testing.T) {
	s := NewSessionStore()
	s.CreateSession("test-id")
	s.AddParticipant("test-id", model.Participant{ID: "user-1", Name: "Alice"})
	s.AddParticipant("test-id", model.Participant{ID: "user-1", Name: "Alicia"})

	p, _ := s.Participant("test-id", "user-1")
	if p.Name != "Alicia" {
		t.Errorf("name = %q, want %q", p.Name, "Alicia")
	}

	state, _ := s.SessionState("test-id")
	if len(state.Participants) != 1 {
		t.Errorf("participants = %d, want 1", len(state.Participants))
	}
}

func TestRemoveParticipant(t *testing.T) {
	s := NewSessionStore()
	s.CreateSession("test-id")
	s.AddParticipant("test-id", model.Participant{ID: "user-1", Name: "Alice"})
	s.AddParticipant("test-id", model.Participant{ID: "user-2", Name: "Bob"})

	if !s.RemoveParticipant("test-id", "user-1") {
		t.Error("remove existing = false, want true")
	}
	if _, ok := s.Participant("test-id", "user-1"); ok {
		t.Error("removed participant still present")
	}
	if _, ok := s.Participant("test-id", "user-2"); !ok {
		t.Error("remaining participant gone")
	}
	if _, ok := s.GetSession("test-id"); !ok {
		t.Error("session deleted while participants remain")
	}
}

func TestRemoveLastParticipantDeletesSession(t *testing.T) {
	s := NewSessionStore()
	s.CreateSession("test-id")
	s.AddParticipant("test-id", model.Participant{ID: "user-1", Name: "Alice"})

	s.RemoveParticipant("test-id", "user-1")

	if _, ok := s.GetSession("test-id"); ok {
		t.Error("empty session not deleted")
	}
	if s.Count() != 0 {
		t.Errorf("count = %d, want 0", s.Count())
	}
}

func TestRemoveParticipantAbsentSession(t *testing.T) {
	s := NewSessionStore()

	if s.RemoveParticipant("non-existent", "user-1") {
		t.Error("remove on absent session = true, want false")
	}
}

func TestUpdateCode(t *testing.T) {
	s := NewSessionStore()
	s.CreateSession("test-id")

	if !s.UpdateCode("test-id", `console.log("Hello");`) {
		t.Error("UpdateCode = false, want true")
	}
	sess, _ := s.GetSession("test-id")
	if sess.Code != `console.log("Hello");` {
		t.Errorf("code = %q", sess.Code)
	}

	if s.UpdateCode("non-existent", "code") {
		t.Error("UpdateCode on absent session = true, want false")
	}
}

func TestUpdateLanguage(t *testing.T) {
	s := NewSessionStore()
	s.CreateSession("test-id")

	if !s.UpdateLanguage("test-id", "python") {
		t.Error("UpdateLanguage = false, want true")
	}
	sess, _ := s.GetSession("test-id")
	if sess.Language != "python" {
		t.Errorf("language = %q, want %q", sess.Language, "python")
	}

	if s.UpdateLanguage("non-existent", "python") {
		t.Error("UpdateLanguage on absent session = true, want false")
	}
}

func TestSessionState(t *testing.T) {
	s := NewSessionStore()

	if _, ok := s.SessionState("non-existent"); ok {
		t.Error("expected absent state")
	}

	s.CreateSession("test-id")
	s.AddParticipant("test-id", model.Participant{ID: "user-1", Name: "Alice"})
	s.AddParticipant("test-id", model.Participant{ID: "user-2", Name: "Bob"})
	s.UpdateCode("test-id", "test code")
	s.UpdateLanguage("test-id", "python")

	state, ok := s.SessionState("test-id")
	if !ok {
		t.Fatal("SessionState absent")
	}
	if state.ID != "test-id" || state.Code != "test code" || state.Language != "python" {
		t.Errorf("state = %+v", state)
	}
	if len(state.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(state.Participants))
	}
	names := map[string]bool{}
	for _, p := range state.Participants {
		names[p.Name] = true
	}
	if !names["Alice"] || !names["Bob"] {
		t.Errorf("participant names = %v", names)
	}
}

func TestParticipantLookup(t *testing.T) {
	s := NewSessionStore()

	if _, ok := s.Participant("non-existent", "user-1"); ok {
		t.Error("expected absent participant for absent session")
	}

	s.CreateSession("test-id")
	if _, ok := s.Participant("test-id", "non-existent"); ok {
		t.Error("expected absent participant")
	}

	s.AddParticipant("test-id", model.Participant{ID: "user-1", Name: "Alice"})
	p, ok := s.Participant("test-id", "user-1")
	if !ok || p.Name != "Alice" {
		t.Errorf("participant = %+v ok=%v", p, ok)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := NewSessionStore()
	s.CreateSession("test-id")
	s.AddParticipant("test-id", model.Participant{ID: "user-1", Name: "Alice"})

	sess, _ := s.GetSession("test-id")
	sess.Code = "mutated"
	delete(sess.Participants, "user-1")

	fresh, _ := s.GetSession("test-id")
	if fresh.Code != model.DefaultCode {
		t.Errorf("store code mutated through snapshot: %q", fresh.Code)
	}
	if len(fresh.Participants) != 1 {
		t.Errorf("store participants mutated through snapshot: %d", len(fresh.Participants))
	}
}
