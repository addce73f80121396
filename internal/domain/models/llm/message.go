package llm

import (
	"fmt"
	"time"
)

// Role is the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a displayed transcript entry. Tool traffic is not kept.
type ChatMessage struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is the caller's chat history plus whether a reply is pending.
type Transcript struct {
	Messages []ChatMessage `json:"messages"`
	Pending  bool          `json:"pending"`
}

// GreetingMessages seeds a fresh transcript so the model knows who it is
// talking to before the first real prompt.
func GreetingMessages(userID string, now time.Time) []ChatMessage {
	return []ChatMessage{
		{Role: RoleUser, Text: fmt.Sprintf("Hello, my userId is %s", userID), CreatedAt: now},
		{Role: RoleAssistant, Text: "Great to meet you. What would you like to know?", CreatedAt: now},
	}
}
