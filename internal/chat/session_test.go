package chat

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/klemjul/menta/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestSession(client llm.LLMClient) *Session {
	return NewSession(NewCompleter(client), zap.NewNop())
}

func TestNewSession(t *testing.T) {
	s := NewSession(NewCompleter(&mockLLMClient{}), nil)

	assert.False(t, s.Pending())
	assert.Equal(t, []Turn{AssistantTurn(Greeting)}, s.Turns())
	_, err := uuid.Parse(s.ID())
	assert.NoError(t, err)
}

func TestSession_SubmitReplyResolve(t *testing.T) {
	client := &mockLLMClient{}
	client.On("Send", t.Context(), []llm.Message{
		{Role: llm.System, Content: SystemInstruction},
		{Role: llm.Assistant, Content: Greeting},
		{Role: llm.User, Content: "Hi"},
	}).Return(&llm.LLMSendResponse{Content: "Hello again"}, nil).Once()
	s := newTestSession(client)

	req, ok := s.Submit("Hi")
	require.True(t, ok)
	assert.True(t, s.Pending())
	assert.Equal(t, []Turn{AssistantTurn(Greeting)}, req.History)
	assert.Equal(t, "Hi", req.Text)
	assert.Equal(t, UserTurn("Hi"), s.Turns()[1])

	turn := s.Reply(t.Context(), req)
	assert.Equal(t, AssistantTurn("Hello again"), turn)
	assert.True(t, s.Pending(), "reply alone must not clear the pending flag")

	turns := s.Resolve(turn)
	assert.False(t, s.Pending())
	assert.Equal(t, []Turn{
		AssistantTurn(Greeting),
		UserTurn("Hi"),
		AssistantTurn("Hello again"),
	}, turns)
	client.AssertExpectations(t)
}

func TestSession_LengthGrowsByTwoPerRound(t *testing.T) {
	client := &mockLLMClient{}
	client.On("Send", mock.Anything, mock.Anything).Return(&llm.LLMSendResponse{Content: "ok"}, nil).Once()
	client.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("network down")).Once()
	client.On("Send", mock.Anything, mock.Anything).Return(&llm.LLMSendResponse{Content: ""}, nil).Once()
	s := newTestSession(client)

	for i, text := range []string{"first", "second", "third"} {
		before := len(s.Turns())

		req, ok := s.Submit(text)
		require.True(t, ok)
		s.Resolve(s.Reply(t.Context(), req))

		assert.Len(t, s.Turns(), before+2, "round %d", i)
	}

	turns := s.Turns()
	assert.Equal(t, "ok", turns[2].Text)
	assert.Equal(t, "Sorry, I encountered an error. Please try again later.", turns[4].Text)
	assert.Equal(t, "I couldn't process that request. Please try again.", turns[6].Text)
	client.AssertNumberOfCalls(t, "Send", 3)
}

func TestSession_SubmitBlankText(t *testing.T) {
	for _, text := range []string{"", " ", "\t\n  "} {
		client := &mockLLMClient{}
		s := newTestSession(client)

		_, ok := s.Submit(text)

		assert.False(t, ok)
		assert.False(t, s.Pending())
		assert.Len(t, s.Turns(), 1)
		client.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	}
}

func TestSession_SubmitWhilePendingIsRejected(t *testing.T) {
	client := &mockLLMClient{}
	client.On("Send", mock.Anything, mock.Anything).Return(&llm.LLMSendResponse{Content: "reply"}, nil)
	s := newTestSession(client)

	first, ok := s.Submit("one")
	require.True(t, ok)
	_, ok = s.Submit("two")
	assert.False(t, ok)
	assert.Len(t, s.Turns(), 2)

	s.Resolve(s.Reply(t.Context(), first))

	client.AssertNumberOfCalls(t, "Send", 1)
	assert.Equal(t, []Turn{
		AssistantTurn(Greeting),
		UserTurn("one"),
		AssistantTurn("reply"),
	}, s.Turns())

	_, ok = s.Submit("two")
	assert.True(t, ok, "submissions are accepted again once the reply is resolved")
}

func TestSession_ResolveWithoutPending(t *testing.T) {
	s := newTestSession(&mockLLMClient{})

	turns := s.Resolve(AssistantTurn("stray"))

	assert.Equal(t, []Turn{AssistantTurn(Greeting)}, turns)
	assert.False(t, s.Pending())
}

func TestSession_ReplyLogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	client := &mockLLMClient{}
	client.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("status 401")).Once()
	s := NewSession(NewCompleter(client), zap.New(core))

	req, ok := s.Submit("Hi")
	require.True(t, ok)
	turn := s.Reply(t.Context(), req)

	assert.Equal(t, AssistantTurn(ErrorReply), turn)
	failures := logs.FilterMessage("completion failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.WarnLevel, failures[0].Level)
	assert.Equal(t, s.ID(), failures[0].ContextMap()["session"])
	assert.Equal(t, "status 401", failures[0].ContextMap()["error"])
}
