package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiChatClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

type llmClientOpenAi struct {
	client      openaiChatClient
	model       string
	temperature *float64
	maxTokens   int64
}

func newOpenAIClient(opts LLMClientOptions, reqOpts ...option.RequestOption) *llmClientOpenAi {
	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}, reqOpts...)
	client := openai.NewClient(clientOpts...)

	return &llmClientOpenAi{
		client:      &client.Chat.Completions,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}
}

func (ai *llmClientOpenAi) toOpenAiMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	var openAiMessages []openai.ChatCompletionMessageParamUnion
	for _, msg := range messages {
		switch msg.Role {
		case User:
			openAiMessages = append(openAiMessages, openai.UserMessage(msg.Content))
		case Assistant:
			openAiMessages = append(openAiMessages, openai.AssistantMessage(msg.Content))
		case System:
			openAiMessages = append(openAiMessages, openai.SystemMessage(msg.Content))
		default:
			openAiMessages = append(openAiMessages, openai.UserMessage(msg.Content))
		}
	}
	return openAiMessages
}

func (ai *llmClientOpenAi) params(messages []Message) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    ai.model,
		Messages: ai.toOpenAiMessages(messages),
		N:        openai.Int(1),
	}
	if ai.temperature != nil {
		params.Temperature = openai.Float(*ai.temperature)
	}
	if ai.maxTokens > 0 {
		params.MaxTokens = openai.Int(ai.maxTokens)
	}
	return params
}

func (ai *llmClientOpenAi) Send(ctx context.Context, messages []Message) (*LLMSendResponse, error) {
	res, err := ai.client.New(ctx, ai.params(messages))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNoResponse
	}
	// No choices is an empty reply, not a failure.
	if len(res.Choices) == 0 {
		return &LLMSendResponse{
			Usage: LLMTokenUsage{
				InputTokens:  res.Usage.PromptTokens,
				OutputTokens: res.Usage.CompletionTokens,
			},
		}, nil
	}

	return &LLMSendResponse{
		Content: res.Choices[0].Message.Content,
		Usage: LLMTokenUsage{
			InputTokens:  res.Usage.PromptTokens,
			OutputTokens: res.Usage.CompletionTokens,
		},
	}, nil
}
