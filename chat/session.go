package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message represents a single chat message
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the per-conversation state handed to every chat call.
type Session struct {
	mu sync.Mutex // serialises turns of one conversation

	ID           string    `json:"session_id"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// NewSession creates an empty session with a fresh id.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:           "sess_" + uuid.NewString(),
		Messages:     []Message{},
		CreatedAt:    now,
		LastActivity: now,
	}
}

// AddMessage appends a message to conversation history
func (s *Session) AddMessage(role, content string) {
	now := time.Now()
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	s.LastActivity = now
}

// LastUserMessage returns the most recent user message
func (s *Session) LastUserMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == "user" {
			return s.Messages[i].Content
		}
	}
	return ""
}

// SessionStore keeps live sessions in memory. Sessions not requested for
// longer than the TTL are dropped on the next access.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	ttl      time.Duration
	now      func() time.Time
}

type storedSession struct {
	session *Session
	seen    time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*storedSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers and returns a new session.
func (st *SessionStore) Create() *Session {
	s := NewSession()

	st.mu.Lock()
	defer st.mu.Unlock()
	st.evictLocked()
	st.sessions[s.ID] = &storedSession{session: s, seen: st.now()}
	return s
}

// Get returns the session for id. Unknown, expired or empty ids get a new
// session with a server-issued id; callers send that id back to the client.
func (st *SessionStore) Get(id string) *Session {
	if id != "" {
		st.mu.Lock()
		st.evictLocked()
		e, ok := st.sessions[id]
		if ok {
			e.seen = st.now()
		}
		st.mu.Unlock()
		if ok {
			return e.session
		}
	}
	return st.Create()
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) evictLocked() {
	if st.ttl <= 0 {
		return
	}
	cutoff := st.now().Add(-st.ttl)
	for id, e := range st.sessions {
		if e.seen.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}
