package services

import (
	"context"
	"errors"
	"fmt"

	"rezoom/feedback-api/internal/metrics"
)

// ChatService continues a free-form conversation about a critique. Nothing
// is persisted.
type ChatService interface {
	Continue(ctx context.Context, history []ChatMessage, message string) (string, error)
}

type chatService struct {
	geminiService GeminiService
	recorder      *metrics.Recorder
}

func NewChatService(geminiService GeminiService, recorder *metrics.Recorder) ChatService {
	return &chatService{
		geminiService: geminiService,
		recorder:      recorder,
	}
}

// Continue returns the model's next turn with decoration removed. Replies
// are never split or scored.
func (s *chatService) Continue(ctx context.Context, history []ChatMessage, message string) (string, error) {
	reply, err := s.geminiService.Chat(ctx, history, message)
	switch {
	case errors.Is(err, ErrEmptyResponse):
		s.recorder.ObserveModelCall("chat", "empty")
		reply = ReplyErrorPlaceholder
	case err != nil:
		s.recorder.ObserveModelCall("chat", "error")
		return "", fmt.Errorf("failed to continue chat: %w", err)
	default:
		s.recorder.ObserveModelCall("chat", "ok")
	}

	return CleanContent(reply), nil
}
