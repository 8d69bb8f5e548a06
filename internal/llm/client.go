package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/anthropics/anthropic-sdk-go"
)

type LLMTokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

type LLMSendResponse struct {
	Content string
	Usage   LLMTokenUsage
}

// LLMClient sends one completion request per call. Implementations do not retry.
type LLMClient interface {
	Send(ctx context.Context, messages []Message) (*LLMSendResponse, error)
}

type LLMProvider string

const (
	LLMProviderOpenAI    LLMProvider = "openai"
	LLMProviderOllama    LLMProvider = "ollama"
	LLMProviderAnthropic LLMProvider = "anthropic"
)

var LLMProviders = []LLMProvider{LLMProviderOpenAI, LLMProviderOllama, LLMProviderAnthropic}

var defaultModels = map[LLMProvider]string{
	LLMProviderOpenAI:    "gpt-3.5-turbo",
	LLMProviderOllama:    "llama3.2",
	LLMProviderAnthropic: string(anthropic.ModelClaude3_7SonnetLatest),
}

// ErrNoResponse is returned when the provider call yields no response body at all.
var ErrNoResponse = errors.New("provider returned no response")

// LLMClientOptions carries the request settings. A nil Temperature leaves the
// provider default in place, any other value is always sent.
type LLMClientOptions struct {
	Model       string
	APIKey      string
	Endpoint    string
	Temperature *float64
	MaxTokens   int64
}

func Float(v float64) *float64 {
	return &v
}

func DefaultModel(provider LLMProvider) string {
	return defaultModels[provider]
}

// NewClient builds the client for provider. API keys are passed through as is,
// a missing key surfaces as a request failure.
func NewClient(provider LLMProvider, opts LLMClientOptions) (LLMClient, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel(provider)
	}
	switch provider {
	case LLMProviderOpenAI:
		return newOpenAIClient(opts), nil
	case LLMProviderAnthropic:
		return newAnthropicClient(opts), nil
	case LLMProviderOllama:
		if opts.Endpoint == "" {
			return nil, fmt.Errorf("OLLAMA_ENDPOINT environment variable is not set")
		}
		localEndpoint, err := url.Parse(opts.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("OLLAMA_ENDPOINT URL is invalid: %v", err)
		}
		return newOllamaClient(*localEndpoint, opts), nil
	default:
		return nil, fmt.Errorf("%s: invalid provider", provider)
	}
}
