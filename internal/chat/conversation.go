// Package chat holds the conversation log, the completion request built from it
// and the session that guards a single in-flight request.
package chat

import "github.com/klemjul/menta/internal/llm"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the conversation. Turns are never modified once appended.
type Turn struct {
	Role Role
	Text string
}

func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text}
}

func AssistantTurn(text string) Turn {
	return Turn{Role: RoleAssistant, Text: text}
}

// toMessage maps a turn to the provider-neutral role names.
func (t Turn) toMessage() llm.Message {
	role := llm.User
	if t.Role == RoleAssistant {
		role = llm.Assistant
	}
	return llm.Message{Role: role, Content: t.Text}
}

// Conversation is an append-only, ordered log of turns. It has a single owner
// and is not safe for concurrent use.
type Conversation struct {
	turns []Turn
}

func NewConversation(seed ...Turn) *Conversation {
	return &Conversation{turns: append([]Turn{}, seed...)}
}

// Append adds turn at the end and returns the updated sequence.
func (c *Conversation) Append(turn Turn) []Turn {
	c.turns = append(c.turns, turn)
	return c.Current()
}

// Current returns a copy of every turn in chronological order.
func (c *Conversation) Current() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Conversation) Len() int {
	return len(c.turns)
}
