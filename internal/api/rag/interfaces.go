package rag

import (
	"context"
	"io"

	"github.com/edgerag/rag-gateway/internal/entity"
)

type RagUsecase interface {
	ChatCompletions(ctx context.Context, req *entity.RagChatCompletionsRequest) (*entity.ChatCompletionsResponse, error)
	ChatCompletionsStream(ctx context.Context, req *entity.RagChatCompletionsRequest) (io.ReadCloser, string, error)
	Retrieve(ctx context.Context, req *entity.RagChatCompletionsRequest) (*entity.RetrieveObject, error)
	Index(ctx context.Context, req *entity.RagEmbeddingRequest) (*entity.EmbeddingsResponse, error)
}
