package chat

import (
	"fmt"
	"strings"

	"nobait/vetting"
)

const Greeting = "Hello! Paste a link and I'll check it for phishing, or ask me anything about staying safe online."

// FallbackReply is sent when no canned answer matches and no responder is
// configured.
const FallbackReply = "Let me check..."

var cannedResponses = map[string]string{
	"hello":                 "Hello! How can I assist you today?",
	"hi":                    "Hi there! What can I help you with?",
	"how are you":           "I'm just a bot, but I'm here to help!",
	"what is phishing":      "Phishing is a cyber attack where attackers impersonate legitimate entities to steal sensitive information.",
	"how to avoid phishing": "To avoid phishing, never click on suspicious links, verify sender identities, and use multi-factor authentication.",
	"tell me about ssl":     "SSL (Secure Sockets Layer) is a security protocol that encrypts data between a browser and a server, making transactions secure.",
	"bye":                   "Goodbye! Stay safe online!",
}

// CannedReply returns the fixed answer for a message, matched on the whole
// message case-insensitively.
func CannedReply(message string) (string, bool) {
	r, ok := cannedResponses[strings.ToLower(strings.TrimSpace(message))]
	return r, ok
}

// FormatAssessment renders one verdict as a chat reply.
func FormatAssessment(a vetting.Assessment) string {
	if !a.Phishing {
		return fmt.Sprintf("✅ The URL `%s` seems safe, but always verify before proceeding.", a.URL)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚨 **Warning!** The URL `%s` appears suspicious.", a.URL)
	if len(a.Reasons) > 0 {
		b.WriteString("\n\nDetected Issues:")
		for _, r := range a.Reasons {
			b.WriteString("\n- ")
			b.WriteString(r)
		}
	}
	return b.String()
}
