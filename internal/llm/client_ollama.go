package llm

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

type ollamaChatClient interface {
	Chat(ctx context.Context, req *api.ChatRequest, fn api.ChatResponseFunc) error
}

type llmClientOllama struct {
	client      ollamaChatClient
	model       string
	temperature *float64
	maxTokens   int64
}

func newOllamaClient(localEndpoint url.URL, opts LLMClientOptions) *llmClientOllama {
	return &llmClientOllama{
		client:      api.NewClient(&localEndpoint, http.DefaultClient),
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}
}

func (ai *llmClientOllama) Send(ctx context.Context, messages []Message) (*LLMSendResponse, error) {
	stream := false
	var content strings.Builder
	var usage LLMTokenUsage

	err := ai.client.Chat(ctx, &api.ChatRequest{
		Model:    ai.model,
		Messages: ai.toOllamaMessages(messages),
		Stream:   &stream,
		Options:  ai.options(),
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		if resp.Done {
			usage = LLMTokenUsage{
				InputTokens:  int64(resp.PromptEvalCount),
				OutputTokens: int64(resp.EvalCount),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &LLMSendResponse{
		Content: content.String(),
		Usage:   usage,
	}, nil
}

func (ai *llmClientOllama) options() map[string]any {
	options := map[string]any{}
	if ai.temperature != nil {
		options["temperature"] = *ai.temperature
	}
	if ai.maxTokens > 0 {
		options["num_predict"] = ai.maxTokens
	}
	return options
}

func (ai *llmClientOllama) toOllamaMessages(messages []Message) []api.Message {
	var ollamaMessages []api.Message
	for _, msg := range messages {
		ollamaMessages = append(ollamaMessages, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return ollamaMessages
}
