package llm

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// max_tokens is mandatory on the messages API.
const anthropicDefaultMaxTokens = 1024

type anthropicMessagesClient interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type llmClientAnthropic struct {
	client      anthropicMessagesClient
	model       string
	temperature *float64
	maxTokens   int64
}

func newAnthropicClient(opts LLMClientOptions, reqOpts ...option.RequestOption) *llmClientAnthropic {
	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}, reqOpts...)
	client := anthropic.NewClient(clientOpts...)

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	return &llmClientAnthropic{
		client:      &client.Messages,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   maxTokens,
	}
}

// toAnthropicParams moves system messages into the System field, the messages
// API only accepts user and assistant roles in the conversation.
func (ai *llmClientAnthropic) toAnthropicParams(messages []Message) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(ai.model),
		MaxTokens: ai.maxTokens,
	}
	if ai.temperature != nil {
		params.Temperature = anthropic.Float(*ai.temperature)
	}

	for _, msg := range messages {
		switch msg.Role {
		case System:
			params.System = append(params.System, anthropic.TextBlockParam{Text: msg.Content})
		case Assistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return params
}

func (ai *llmClientAnthropic) Send(ctx context.Context, messages []Message) (*LLMSendResponse, error) {
	res, err := ai.client.New(ctx, ai.toAnthropicParams(messages))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNoResponse
	}

	var content string
	for _, block := range res.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			content = text.Text
			break
		}
	}

	return &LLMSendResponse{
		Content: content,
		Usage: LLMTokenUsage{
			InputTokens:  res.Usage.InputTokens,
			OutputTokens: res.Usage.OutputTokens,
		},
	}, nil
}
