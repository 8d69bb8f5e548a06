package chat

import (
	"context"

	"github.com/klemjul/menta/internal/llm"
	"github.com/stretchr/testify/mock"
)

type mockLLMClient struct {
	mock.Mock
}

func (c *mockLLMClient) Send(ctx context.Context, messages []llm.Message) (*llm.LLMSendResponse, error) {
	args := c.Called(ctx, messages)
	resVal := args.Get(0)
	if resVal == nil {
		return nil, args.Error(1)
	}
	return resVal.(*llm.LLMSendResponse), args.Error(1)
}
