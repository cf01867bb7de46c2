package models

import "encoding/json"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`

	// Raw is the message exactly as an upstream provider returned it. When
	// set it is what gets marshalled, so provider fields survive the relay.
	Raw json.RawMessage `json:"-"`
}

func (m ChatMessage) MarshalJSON() ([]byte, error) {
	if len(m.Raw) > 0 {
		return m.Raw, nil
	}
	type plain ChatMessage
	return json.Marshal(plain(m))
}

// ValidRole reports whether role is one the upstream providers accept.
func ValidRole(role string) bool {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// ChatRequest is the payload sent to the chat endpoint. The client resends
// the full history on every turn.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the reply relayed from the upstream provider.
type ChatResponse struct {
	Reply ChatMessage `json:"reply"`
}

// FallbackReply is returned when the upstream succeeds without a usable message.
var FallbackReply = ChatMessage{
	Role:    RoleAssistant,
	Content: "Sorry, I couldn't generate a response right now.",
}
