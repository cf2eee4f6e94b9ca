package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nobait/vetting"
)

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID   string               `json:"session_id"`
	Replies     []string             `json:"replies"`
	Assessments []vetting.Assessment `json:"assessments,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// Handler exposes the bot over HTTP.
type Handler struct {
	bot      *Bot
	sessions *SessionStore
	log      *zap.SugaredLogger
}

func NewHandler(bot *Bot, sessions *SessionStore, log *zap.SugaredLogger) *Handler {
	return &Handler{bot: bot, sessions: sessions, log: log}
}

// Routes mounts the chat endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/chat/start", h.Start)
	r.Post("/chat", h.Chat)
}

// Start initialises a new chat session.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	s.mu.Lock()
	s.AddMessage("assistant", Greeting)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, ChatResponse{
		SessionID: s.ID,
		Replies:   []string{Greeting},
	})
}

// Chat handles one user message.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ChatResponse{Error: "Invalid request body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, ChatResponse{SessionID: req.SessionID, Error: "message required"})
		return
	}

	s := h.sessions.Get(req.SessionID)
	reply := h.bot.Handle(r.Context(), s, req.Message)

	writeJSON(w, http.StatusOK, ChatResponse{
		SessionID:   s.ID,
		Replies:     reply.Messages,
		Assessments: reply.Assessments,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
