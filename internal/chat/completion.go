package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/klemjul/menta/internal/llm"
)

const (
	SystemInstruction = "You are Menta, a compassionate mental health assistant. Provide supportive, empathetic responses while maintaining appropriate boundaries and encouraging professional help when needed."
	Greeting          = "Hello! I'm Menta, your personal Mental Health Assistant. How're you doing?"
	NoContentReply    = "I couldn't process that request. Please try again."
	ErrorReply        = "Sorry, I encountered an error. Please try again later."
)

var ErrEmptyMessage = errors.New("message is empty")

// CompletionError covers every failed completion: transport errors, non-success
// statuses and unusable payloads.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// Completer turns a conversation and a new user text into one completion call.
// It keeps no state between calls and does not serialize them.
type Completer struct {
	client      llm.LLMClient
	instruction string
}

func NewCompleter(client llm.LLMClient) *Completer {
	return &Completer{client: client, instruction: SystemInstruction}
}

// BuildRequest returns the system instruction, then every prior turn, then the
// new user text.
func (c *Completer) BuildRequest(history []Turn, text string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.System, Content: c.instruction})
	for _, turn := range history {
		messages = append(messages, turn.toMessage())
	}
	return append(messages, llm.Message{Role: llm.User, Content: text})
}

func (c *Completer) Complete(ctx context.Context, history []Turn, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	res, err := c.client.Send(ctx, c.BuildRequest(history, text))
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	if res == nil {
		return "", &CompletionError{Err: llm.ErrNoResponse}
	}
	if res.Content == "" {
		return NoContentReply, nil
	}
	return res.Content, nil
}
