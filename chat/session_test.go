package chat

import (
	"strings"
	"testing"
	"time"
)

func TestSessionHistory(t *testing.T) {
	s := NewSession()
	if !strings.HasPrefix(s.ID, "sess_") {
		t.Errorf("unexpected id %q", s.ID)
	}
	if s.LastUserMessage() != "" {
		t.Error("new session has no user message")
	}

	s.AddMessage("user", "first")
	s.AddMessage("assistant", "reply")
	s.AddMessage("user", "second")
	s.AddMessage("assistant", "reply")

	if got := s.LastUserMessage(); got != "second" {
		t.Errorf("got %q, want second", got)
	}
	if len(s.Messages) != 4 {
		t.Errorf("expected 4 messages, got %d", len(s.Messages))
	}
}

func TestSessionStore(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewSessionStore(time.Minute)
	store.now = func() time.Time { return now }

	a := store.Create()
	if got := store.Get(a.ID); got != a {
		t.Fatal("Get must return the stored session")
	}
	if store.Get("") == a {
		t.Error("empty id must create a new session")
	}

	fresh := store.Get("sess_custom")
	if fresh.ID == "sess_custom" || !strings.HasPrefix(fresh.ID, "sess_") {
		t.Errorf("unknown id must get a server-issued id, got %q", fresh.ID)
	}
	if got := store.Get(fresh.ID); got != fresh {
		t.Error("issued id must resolve to the same session")
	}
	if store.Len() != 3 {
		t.Errorf("expected 3 sessions, got %d", store.Len())
	}

	now = now.Add(30 * time.Second)
	store.Get(a.ID)
	now = now.Add(45 * time.Second)

	if store.Get(a.ID) != a {
		t.Error("recently used session must survive")
	}
	if store.Len() != 1 {
		t.Errorf("idle sessions should be evicted, %d left", store.Len())
	}
}
