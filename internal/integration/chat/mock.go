package chat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a mock inference engine for local development and tests.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) ChatCompletions(ctx context.Context, req *entity.ChatCompletionRequest) (*entity.ChatCompletionsResponse, error) {
	ctxzap.Info(ctx, "[MOCK] chat completion",
		zap.Int("message_count", len(req.Messages)),
	)

	model := "mock-chat-model"
	if req.Model != nil {
		model = *req.Model
	}

	var lastUser string
	for _, msg := range req.Messages {
		if msg.Role == entity.RoleUser {
			lastUser = msg.Content
		}
	}

	return &entity.ChatCompletionsResponse{
		ID:     "chatcmpl-mock",
		Object: "chat.completion",
		Model:  model,
		Choices: []entity.ChatCompletionChoice{{
			Index: 0,
			Message: entity.ChatCompletionResponseMessage{
				Role:    entity.RoleAssistant,
				Content: fmt.Sprintf("Mock answer to: %s", lastUser),
			},
			FinishReason: "stop",
		}},
	}, nil
}

func (m *MockConnector) ChatCompletionsStream(ctx context.Context, req *entity.ChatCompletionRequest) (io.ReadCloser, string, error) {
	ctxzap.Info(ctx, "[MOCK] streaming chat completion",
		zap.Int("message_count", len(req.Messages)),
	)

	stream := "data: {\"choices\":[{\"delta\":{\"content\":\"Mock stream\"}}]}\n\ndata: [DONE]\n\n"
	return io.NopCloser(strings.NewReader(stream)), "text/event-stream", nil
}
