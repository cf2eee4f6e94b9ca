package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nobait/vetting"
)

// Responder answers free-text questions that have no canned reply.
type Responder interface {
	Respond(ctx context.Context, history []Message, message string) (string, error)
}

// Bot routes user messages to the URL scorer, the canned replies or the
// fallback responder.
type Bot struct {
	assessor  *vetting.Assessor
	responder Responder
	maxURLs   int
	log       *zap.SugaredLogger
}

// NewBot creates a bot. responder may be nil.
func NewBot(assessor *vetting.Assessor, responder Responder, maxURLs int, log *zap.SugaredLogger) *Bot {
	return &Bot{
		assessor:  assessor,
		responder: responder,
		maxURLs:   maxURLs,
		log:       log,
	}
}

// Reply is the outcome of one user turn.
type Reply struct {
	Messages    []string             `json:"messages"`
	Assessments []vetting.Assessment `json:"assessments,omitempty"`
}

// Handle processes one user message against the session and records both
// sides of the exchange in its history.
func (b *Bot) Handle(ctx context.Context, s *Session, message string) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.AddMessage("user", message)

	var reply Reply
	if urls := vetting.ExtractURLs(message, b.maxURLs); len(urls) > 0 {
		b.log.Infof("[CHAT] %s: assessing %d url(s)", s.ID, len(urls))
		reply.Assessments = b.assessor.AssessAll(ctx, urls)
		for _, a := range reply.Assessments {
			reply.Messages = append(reply.Messages, FormatAssessment(a))
		}
	} else {
		reply.Messages = []string{b.answer(ctx, s, message)}
	}

	for _, m := range reply.Messages {
		s.AddMessage("assistant", m)
	}
	return reply
}

func (b *Bot) answer(ctx context.Context, s *Session, message string) string {
	if r, ok := CannedReply(message); ok {
		return r
	}
	if b.responder == nil {
		return FallbackReply
	}

	// History without the message just added; the responder gets it separately.
	history := s.Messages[:len(s.Messages)-1]
	r, err := b.responder.Respond(ctx, history, message)
	if err != nil {
		b.log.Warnf("[CHAT] %s: responder failed: %v", s.ID, err)
		return fmt.Sprintf("An error occurred: %v", err)
	}
	if r == "" {
		return "I couldn't generate a response."
	}
	return r
}
