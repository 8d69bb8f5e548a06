package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/klemjul/menta/internal/llm"
	"go.uber.org/zap"
)

// Request is the snapshot a pending submission hands to Reply.
type Request struct {
	History []Turn
	Text    string
}

// Session owns the conversation and the pending flag. Submit and Resolve must be
// called from the same goroutine; Reply only reads its Request and may run elsewhere.
type Session struct {
	id           string
	conversation *Conversation
	completer    *Completer
	pending      bool
	log          *zap.Logger
}

func NewSession(completer *Completer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:           id,
		conversation: NewConversation(AssistantTurn(Greeting)),
		completer:    completer,
		log:          log.With(zap.String("session", id)),
	}
}

func (s *Session) ID() string    { return s.id }
func (s *Session) Pending() bool { return s.pending }
func (s *Session) Turns() []Turn { return s.conversation.Current() }

// Submit appends the user turn and marks the session pending. Blank text and
// submissions while a reply is outstanding are rejected without side effects.
func (s *Session) Submit(text string) (Request, bool) {
	if strings.TrimSpace(text) == "" {
		return Request{}, false
	}
	if s.pending {
		s.log.Debug("submission rejected, reply pending")
		return Request{}, false
	}

	req := Request{History: s.conversation.Current(), Text: text}
	s.conversation.Append(UserTurn(text))
	s.pending = true
	s.log.Debug("message submitted", zap.Int("turns", s.conversation.Len()))
	return req, true
}

// Reply runs the completion and always yields an assistant turn.
func (s *Session) Reply(ctx context.Context, req Request) Turn {
	if ce := s.log.Check(zap.DebugLevel, "requesting completion"); ce != nil {
		ce.Write(
			zap.Int("history", len(req.History)),
			zap.Int("estimated_tokens", llm.RoughEstimateTokens(s.completer.BuildRequest(req.History, req.Text)...)))
	}

	text, err := s.completer.Complete(ctx, req.History, req.Text)
	if err != nil {
		var completionErr *CompletionError
		if errors.As(err, &completionErr) {
			s.log.Warn("completion failed", zap.Error(completionErr.Err))
		} else {
			s.log.Error("completion rejected", zap.Error(err))
		}
		return AssistantTurn(ErrorReply)
	}
	s.log.Debug("completion received", zap.Int("length", len(text)))
	return AssistantTurn(text)
}

// Resolve appends the assistant turn and clears the pending flag.
func (s *Session) Resolve(turn Turn) []Turn {
	if !s.pending {
		s.log.Warn("reply dropped, nothing pending")
		return s.conversation.Current()
	}
	s.pending = false
	return s.conversation.Append(turn)
}
